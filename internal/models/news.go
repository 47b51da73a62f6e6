package models

import (
	"time"

	"gorm.io/gorm"
)

type NewsCategory string

const (
	NewsGeneral      NewsCategory = "general"
	NewsSpotlight    NewsCategory = "alumni_spotlight"
	NewsAchievements NewsCategory = "achievements"
	NewsEvents       NewsCategory = "events"
	NewsCareers      NewsCategory = "careers"
	NewsInstitution  NewsCategory = "institution"
)

// News is a CMS article authored by a coordinator. Content is markdown;
// rendering and sanitization happen at the handler boundary.
type News struct {
	gorm.Model
	Title    string       `gorm:"size:200;not null"`
	Content  string       `gorm:"not null"`
	Category NewsCategory `gorm:"size:20;not null;default:'general'"`

	AuthorID    uint `gorm:"not null;index"`
	IsPublished bool `gorm:"not null;default:false"`
	IsFeatured  bool `gorm:"not null;default:false"`
	PublishDate *time.Time

	Slug            string `gorm:"size:220;unique;not null"`
	MetaDescription string `gorm:"size:160"`

	Author CoordinatorProfile `gorm:"foreignKey:AuthorID"`
}

type FeedbackType string

const (
	FeedbackGeneral   FeedbackType = "general"
	FeedbackTechnical FeedbackType = "technical"
	FeedbackFeature   FeedbackType = "feature_request"
	FeedbackComplaint FeedbackType = "complaint"
	FeedbackSuggestion FeedbackType = "suggestion"
)

// Feedback is an alumni-submitted note, optionally answered by a coordinator.
type Feedback struct {
	gorm.Model
	AlumniID   uint         `gorm:"not null;index"`
	Type       FeedbackType `gorm:"size:20;not null;default:'general'"`
	Subject    string       `gorm:"size:200;not null"`
	Body       string       `gorm:"not null"`
	Reply      string
	IsResolved bool `gorm:"not null;default:false"`
	Rating     *int // 1..5

	Alumni AlumniProfile `gorm:"foreignKey:AlumniID;constraint:OnDelete:CASCADE;"`
}
