package handler

import (
	"errors"
	"net/http"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"
	"cosaportal/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// region --- DTOs ---

// RegisterInput defines the structure for alumni self-registration.
type RegisterInput struct {
	FirstName        string `json:"first_name" binding:"required" example:"Jane"`
	LastName         string `json:"last_name" binding:"required" example:"Doe"`
	Email            string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password         string `json:"password" binding:"required,min=8" example:"password123"`
	GraduationYearID *uint  `json:"graduation_year_id"`
	DegreeID         *uint  `json:"degree_id"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// PrivateUserResponse is the authenticated user's own profile.
type PrivateUserResponse struct {
	ID         uint        `json:"id" example:"1"`
	Email      string      `json:"email" example:"jane@example.com"`
	Name       string      `json:"name" example:"Jane Doe"`
	Role       models.Role `json:"role" example:"alumni"`
	IsVerified bool        `json:"is_verified"`
	StudentID  string      `json:"student_id,omitempty" example:"COSAOL007"`

	FriendsCount   int64 `json:"friends_count"`
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// FCMTokenInput carries a device push token.
type FCMTokenInput struct {
	FCMToken string `json:"fcm_token" binding:"required"`
}

// endregion

// createAccount persists a user together with its matching auxiliary profile
// in one transaction. Alumni accounts get their student ID assigned before
// commit, so a failed generation rolls the whole registration back.
func createAccount(db *gorm.DB, user *models.User, alumni *models.AlumniProfile) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		switch user.EffectiveRole() {
		case models.RoleAdmin:
			return tx.Create(&models.AdminProfile{UserID: user.ID}).Error
		case models.RoleCoordinator:
			return tx.Create(&models.CoordinatorProfile{UserID: user.ID}).Error
		default:
			if alumni == nil {
				alumni = &models.AlumniProfile{}
			}
			alumni.UserID = user.ID
			if err := tx.Create(alumni).Error; err != nil {
				return err
			}
			studentID, err := alumni.GenerateStudentID(tx)
			if err != nil {
				return err
			}
			return tx.Model(alumni).Update("student_id", studentID).Error
		}
	})
}

// region --- Auth Handlers ---

// RegisterUser godoc
// @Summary      Register a new alumni account
// @Description  Creates an unverified alumni account with its profile and returns an authentication token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      201  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingUser models.User
	if err := database.DB.Where("LOWER(email) = LOWER(?)", input.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    sanitizeText(input.FirstName),
		LastName:     sanitizeText(input.LastName),
		Role:         models.RoleAlumni,
	}
	alumni := models.AlumniProfile{
		GraduationYearID: input.GraduationYearID,
		DegreeID:         input.DegreeID,
	}

	if err := createAccount(database.DB, &user, &alumni); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates by case-insensitive email and password, lifting expired suspensions lazily.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]string "{"token": "..."}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      403  {object}  ErrorResponse "Account suspended"
// @Failure      500  {object}  ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("LOWER(email) = LOWER(?)", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	wasSuspended := user.IsSuspended
	if !user.CanLogin(timeNow()) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return
	}
	if wasSuspended && !user.IsSuspended {
		// Timed suspension ran out; persist the lifted state.
		if err := database.DB.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			return
		}
	}

	token, err := jwt.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// endregion

// region --- User Handlers ---

// GetMe godoc
// @Summary      Get current user's info
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  PrivateUserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	user := currentUser(c)

	response := PrivateUserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.FullName(),
		Role:       user.EffectiveRole(),
		IsVerified: user.IsVerified,
	}

	if user.EffectiveRole() == models.RoleAlumni {
		var profile models.AlumniProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response.StudentID = profile.StudentID
		}
	}

	database.DB.Model(&models.Friendship{}).
		Where("user1_id = ? OR user2_id = ?", user.ID, user.ID).
		Count(&response.FriendsCount)
	database.DB.Model(&models.Follow{}).Where("following_id = ?", user.ID).Count(&response.FollowersCount)
	database.DB.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&response.FollowingCount)

	c.JSON(http.StatusOK, response)
}

// UpdateFCMToken godoc
// @Summary      Update push token
// @Description  Stores the caller's device push token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FCMTokenInput true "Token"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Router       /users/me/fcm-token [put]
func UpdateFCMToken(c *gin.Context) {
	user := currentUser(c)

	var input FCMTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(user).Update("fcm_token", input.FCMToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// endregion

// lookupUser loads a user by ID, translating not-found.
func lookupUser(id uint) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}
