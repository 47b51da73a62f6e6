package models

import "gorm.io/gorm"

type DonationType string

const (
	DonationGeneral        DonationType = "general"
	DonationScholarship    DonationType = "scholarship"
	DonationInfrastructure DonationType = "infrastructure"
	DonationResearch       DonationType = "research"
	DonationEmergency      DonationType = "emergency"
	DonationOther          DonationType = "other"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Donation records a contribution by an alumni. TransactionID is a uuid
// assigned at creation.
type Donation struct {
	gorm.Model
	DonorID  uint         `gorm:"not null;index"`
	Amount   float64      `gorm:"not null"`
	Currency string       `gorm:"size:3;not null;default:'USD'"`
	Type     DonationType `gorm:"size:20;not null"`

	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:'pending'"`
	PaymentMethod string        `gorm:"size:50"`
	TransactionID string        `gorm:"size:36;unique;not null"`

	IsAnonymous   bool `gorm:"not null;default:false"`
	PublicMessage string
	Campaign      string `gorm:"size:100"`
	Notes         string

	Donor AlumniProfile `gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE;"`
}
