package models

import (
	"time"

	"gorm.io/gorm"
)

type JobType string

const (
	JobFullTime   JobType = "full_time"
	JobPartTime   JobType = "part_time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
	JobFreelance  JobType = "freelance"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// JobPosting is a job advertised by an alumni on behalf of a company.
type JobPosting struct {
	gorm.Model
	Title        string `gorm:"size:200;not null"`
	CompanyID    uint   `gorm:"not null;index"`
	Description  string `gorm:"not null"`
	Requirements string

	JobType         JobType         `gorm:"size:20;not null"`
	ExperienceLevel ExperienceLevel `gorm:"size:20;not null;default:'mid'"`
	Location        string          `gorm:"size:200;not null"`
	IsRemote        bool            `gorm:"not null;default:false"`

	SalaryMin *float64
	SalaryMax *float64
	Currency  string `gorm:"size:3;not null;default:'USD'"`

	ApplicationDeadline *time.Time
	ApplicationEmail    string
	ApplicationURL      string

	PostedByID uint `gorm:"not null;index"`
	IsActive   bool `gorm:"not null;default:true"`
	IsFeatured bool `gorm:"not null;default:false"`

	Company  Company       `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE;"`
	PostedBy AlumniProfile `gorm:"foreignKey:PostedByID;constraint:OnDelete:CASCADE;"`
}

// ApplicationOpen reports whether the posting accepts applications at now.
func (j *JobPosting) ApplicationOpen(now time.Time) bool {
	if !j.IsActive {
		return false
	}
	if j.ApplicationDeadline != nil {
		return now.Before(*j.ApplicationDeadline)
	}
	return true
}

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationInterviewed ApplicationStatus = "interviewed"
	ApplicationOffered     ApplicationStatus = "offered"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// JobApplication links an applicant to a posting, unique per pair.
type JobApplication struct {
	gorm.Model
	JobID       uint              `gorm:"not null;uniqueIndex:idx_job_applicant"`
	ApplicantID uint              `gorm:"not null;uniqueIndex:idx_job_applicant;index"`
	Status      ApplicationStatus `gorm:"size:20;not null;default:'applied'"`
	CoverLetter string
	Resume      string

	Job       JobPosting    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE;"`
	Applicant AlumniProfile `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE;"`
}
