package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the account-level role discriminant. Every user owns exactly one
// auxiliary profile matching its role.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleAlumni      Role = "alumni"
)

type Gender string

const (
	GenderMale        Gender = "M"
	GenderFemale      Gender = "F"
	GenderOther       Gender = "O"
	GenderUndisclosed Gender = "P"
)

// User represents an account in the system.
type User struct {
	gorm.Model
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	Role         Role   `gorm:"size:20;not null;default:'alumni';index"`
	IsSuperuser  bool   `gorm:"not null;default:false"`
	IsVerified   bool   `gorm:"not null;default:false"`

	Gender      Gender `gorm:"size:1"`
	PhoneNumber string `gorm:"size:20"`
	Address     string
	FCMToken    string // for push notifications

	// Account suspension. A nil SuspensionExpiresAt means permanent.
	IsSuspended         bool `gorm:"not null;default:false"`
	SuspensionReason    string
	SuspendedAt         *time.Time
	SuspensionExpiresAt *time.Time
}

// FullName returns the display name, falling back to the email address.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Email
}

// EffectiveRole resolves the role discriminant. Superusers are always admins.
func (u *User) EffectiveRole() Role {
	if u.IsSuperuser {
		return RoleAdmin
	}
	return u.Role
}

// Suspend marks the account suspended from now until expiresAt (nil = permanent).
func (u *User) Suspend(reason string, expiresAt *time.Time) {
	now := time.Now()
	u.IsSuspended = true
	u.SuspensionReason = reason
	u.SuspendedAt = &now
	u.SuspensionExpiresAt = expiresAt
}

// Unsuspend clears all suspension fields.
func (u *User) Unsuspend() {
	u.IsSuspended = false
	u.SuspensionReason = ""
	u.SuspendedAt = nil
	u.SuspensionExpiresAt = nil
}

// SuspensionExpired reports whether a timed suspension has run out.
func (u *User) SuspensionExpired(now time.Time) bool {
	if !u.IsSuspended || u.SuspensionExpiresAt == nil {
		return false
	}
	return now.After(*u.SuspensionExpiresAt)
}

// CanLogin computes the effective suspension status at check time. Expired
// suspensions are lifted lazily here rather than by a background sweep; the
// caller is responsible for persisting the cleared fields when it returns true
// on a previously suspended account.
func (u *User) CanLogin(now time.Time) bool {
	if !u.IsSuspended {
		return true
	}
	if u.SuspensionExpired(now) {
		u.Unsuspend()
		return true
	}
	return false
}

// BeforeSave forces superuser accounts to the admin role.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.IsSuperuser && u.Role != RoleAdmin {
		u.Role = RoleAdmin
	}
	return nil
}
