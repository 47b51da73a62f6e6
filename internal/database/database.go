package database

import (
	"log"
	"os"
	"time"

	"cosaportal/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// gormConfig builds the gorm configuration. TranslateError must stay on:
// handlers match unique violations with errors.Is(err, gorm.ErrDuplicatedKey).
func gormConfig() *gorm.Config {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	return &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	}
}

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// Run migrations
	err = DB.AutoMigrate(
		&models.User{},
		&models.AdminProfile{},
		&models.CoordinatorProfile{},
		&models.AlumniProfile{},
		&models.GraduationYear{},
		&models.Department{},
		&models.Degree{},
		&models.Company{},
		&models.Message{},
		&models.MessageReply{},
		&models.Follow{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Notification{},
		&models.Event{},
		&models.EventRegistration{},
		&models.JobPosting{},
		&models.JobApplication{},
		&models.Donation{},
		&models.MentorshipProgram{},
		&models.News{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")
}
