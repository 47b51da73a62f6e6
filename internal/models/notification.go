package models

import "time"

type NotificationType string

const (
	NotificationFollow           NotificationType = "follow"
	NotificationFriendRequest    NotificationType = "friend_request"
	NotificationFriendAcceptance NotificationType = "friend_acceptance"
	NotificationMessage          NotificationType = "message"
	NotificationEvent            NotificationType = "event"
	NotificationNews             NotificationType = "news"
	NotificationSystem           NotificationType = "system"
)

// Notification is a feed entry for a user. Sender is nil for system
// notifications.
type Notification struct {
	ID          uint             `gorm:"primaryKey"`
	RecipientID uint             `gorm:"not null;index"`
	SenderID    *uint            `gorm:"index"`
	Type        NotificationType `gorm:"size:20;not null"`
	Message     string           `gorm:"not null"`
	IsRead      bool             `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	ReadAt      *time.Time

	Recipient User  `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
