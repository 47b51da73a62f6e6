package models

import (
	"time"

	"gorm.io/gorm"
)

type ProgramStatus string

const (
	ProgramActive    ProgramStatus = "active"
	ProgramCompleted ProgramStatus = "completed"
	ProgramPaused    ProgramStatus = "paused"
	ProgramCancelled ProgramStatus = "cancelled"
)

// MentorshipProgram pairs a mentor alumni with a mentee alumni.
type MentorshipProgram struct {
	gorm.Model
	MentorID uint `gorm:"not null;index"`
	MenteeID uint `gorm:"not null;index"`

	FocusArea      string `gorm:"size:100;not null"`
	Goals          string `gorm:"not null"`
	DurationMonths int    `gorm:"not null;default:6"`

	Status    ProgramStatus `gorm:"size:20;not null;default:'active'"`
	StartDate time.Time     `gorm:"not null"`
	EndDate   *time.Time

	MentorFeedback   string
	MenteeFeedback   string
	CoordinatorNotes string

	Mentor AlumniProfile `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE;"`
	Mentee AlumniProfile `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE;"`
}
