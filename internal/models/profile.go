package models

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// AdminProfile is the auxiliary profile for admin accounts.
type AdminProfile struct {
	gorm.Model
	UserID     uint   `gorm:"uniqueIndex;not null"`
	EmployeeID string `gorm:"size:20"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CoordinatorProfile is the auxiliary profile for alumni coordinators.
type CoordinatorProfile struct {
	gorm.Model
	UserID     uint   `gorm:"uniqueIndex;not null"`
	EmployeeID string `gorm:"size:20"`
	Department string `gorm:"size:100"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type EmploymentStatus string

const (
	EmploymentEmployed     EmploymentStatus = "employed"
	EmploymentUnemployed   EmploymentStatus = "unemployed"
	EmploymentSelfEmployed EmploymentStatus = "self_employed"
	EmploymentStudent      EmploymentStatus = "student"
	EmploymentRetired      EmploymentStatus = "retired"
)

// PrivacyLevel gates directory visibility of an alumni profile.
type PrivacyLevel string

const (
	// PrivacyPublic profiles are visible to all alumni.
	PrivacyPublic PrivacyLevel = "public"
	// PrivacyLimited profiles are visible to verified alumni only.
	PrivacyLimited PrivacyLevel = "limited"
	// PrivacyPrivate profiles are hidden from the directory.
	PrivacyPrivate PrivacyLevel = "private"
)

// AlumniProfile is the auxiliary profile for alumni accounts.
type AlumniProfile struct {
	gorm.Model
	UserID           uint   `gorm:"uniqueIndex;not null"`
	StudentID        string `gorm:"size:20;unique"`
	DegreeID         *uint  `gorm:"index"`
	GraduationYearID *uint  `gorm:"index"`

	// Professional information
	CurrentCompanyID *uint            `gorm:"index"`
	JobTitle         string           `gorm:"size:100"`
	EmploymentStatus EmploymentStatus `gorm:"size:20;default:'employed'"`
	Industry         string           `gorm:"size:100"`
	LinkedinProfile  string

	// Personal information
	DateOfBirth    *time.Time
	CurrentCity    string `gorm:"size:100"`
	CurrentCountry string `gorm:"size:100"`
	Bio            string
	Achievements   string
	Skills         string

	// Privacy and communication
	PrivacyLevel           PrivacyLevel `gorm:"size:20;not null;default:'limited'"`
	AllowContact           bool         `gorm:"not null;default:true"`
	NewsletterSubscription bool         `gorm:"not null;default:true"`

	// Engagement
	IsMentor      bool `gorm:"not null;default:false"`
	IsJobSeeker   bool `gorm:"not null;default:false"`
	WillingToHire bool `gorm:"not null;default:false"`

	User           User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Degree         *Degree         `gorm:"foreignKey:DegreeID"`
	GraduationYear *GraduationYear `gorm:"foreignKey:GraduationYearID"`
	CurrentCompany *Company        `gorm:"foreignKey:CurrentCompanyID"`
}

// FullName returns the owning user's display name. The User association must
// be loaded.
func (a *AlumniProfile) FullName() string {
	return a.User.FullName()
}

// StudentIDPrefix builds the prefix for a level bucket, e.g. "COSAOL".
func StudentIDPrefix(levelCode string) string {
	return "COSA" + levelCode
}

// FormatStudentID renders a student ID from a prefix and sequence number,
// zero-padding the sequence to three digits.
func FormatStudentID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// StudentIDSequence extracts the trailing 3-digit sequence of a student ID.
// Returns 0 when the ID does not end in a parseable sequence.
func StudentIDSequence(studentID string) int {
	if len(studentID) < 3 {
		return 0
	}
	seq, err := strconv.Atoi(studentID[len(studentID)-3:])
	if err != nil {
		return 0
	}
	return seq
}

// GenerateStudentID assigns the next free student ID in the profile's
// graduation-year bucket. The sequence continues from the highest existing ID
// with the same prefix; collisions (concurrent registrations in the same
// bucket) are probed by incrementing and re-checking existence.
func (a *AlumniProfile) GenerateStudentID(tx *gorm.DB) (string, error) {
	if a.GraduationYearID == nil {
		return fmt.Sprintf("COSAUNK%d%03d", time.Now().Year(), a.ID), nil
	}

	var year GraduationYear
	if err := tx.First(&year, *a.GraduationYearID).Error; err != nil {
		return "", err
	}
	prefix := StudentIDPrefix(year.ShortCode())

	var last AlumniProfile
	next := 1
	err := tx.Where("graduation_year_id = ? AND student_id LIKE ?", *a.GraduationYearID, prefix+"%").
		Order("student_id DESC").
		First(&last).Error
	if err == nil {
		next = StudentIDSequence(last.StudentID) + 1
	} else if err != gorm.ErrRecordNotFound {
		return "", err
	}

	candidate := FormatStudentID(prefix, next)
	for {
		var count int64
		if err := tx.Model(&AlumniProfile{}).Where("student_id = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		next++
		candidate = FormatStudentID(prefix, next)
	}
}
