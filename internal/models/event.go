package models

import (
	"time"

	"gorm.io/gorm"
)

type EventType string

const (
	EventReunion     EventType = "reunion"
	EventNetworking  EventType = "networking"
	EventSeminar     EventType = "seminar"
	EventSocial      EventType = "social"
	EventFundraising EventType = "fundraising"
	EventCareerFair  EventType = "career"
	EventWebinar     EventType = "webinar"
	EventOther       EventType = "other"
)

type EventStatus string

const (
	EventUpcoming  EventStatus = "upcoming"
	EventOngoing   EventStatus = "ongoing"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// Event is an alumni event organized by a coordinator.
type Event struct {
	gorm.Model
	Title       string      `gorm:"size:200;not null"`
	Description string      `gorm:"not null"`
	EventType   EventType   `gorm:"size:20;not null"`
	Status      EventStatus `gorm:"size:20;not null;default:'upcoming'"`

	StartDate            time.Time `gorm:"not null"`
	EndDate              time.Time `gorm:"not null"`
	RegistrationDeadline *time.Time

	IsVirtual   bool   `gorm:"not null;default:false"`
	Venue       string `gorm:"size:200"`
	Address     string
	VirtualLink string

	MaxAttendees     *int
	RegistrationFee  float64 `gorm:"not null;default:0"`
	RequiresApproval bool    `gorm:"not null;default:false"`

	OrganizerID           uint               `gorm:"not null;index"`
	Organizer             CoordinatorProfile `gorm:"foreignKey:OrganizerID"`
	TargetGraduationYears []*GraduationYear  `gorm:"many2many:event_target_years;"`
}

// RegistrationOpen reports whether new registrations are accepted at now.
func (e *Event) RegistrationOpen(now time.Time) bool {
	if e.Status != EventUpcoming {
		return false
	}
	if e.RegistrationDeadline != nil {
		return now.Before(*e.RegistrationDeadline)
	}
	return true
}

type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
	RegistrationWaitlist  RegistrationStatus = "waitlist"
)

// EventRegistration links an alumni to an event, unique per pair.
type EventRegistration struct {
	gorm.Model
	EventID       uint               `gorm:"not null;uniqueIndex:idx_event_alumni"`
	AlumniID      uint               `gorm:"not null;uniqueIndex:idx_event_alumni;index"`
	Status        RegistrationStatus `gorm:"size:20;not null;default:'pending'"`
	ReferenceCode string             `gorm:"size:36;unique"`
	PaymentStatus bool               `gorm:"not null;default:false"`
	SpecialNeeds  string

	Event  Event         `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`
	Alumni AlumniProfile `gorm:"foreignKey:AlumniID;constraint:OnDelete:CASCADE;"`
}
