package handler

import (
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/hub"
	"cosaportal/backend/internal/models"
)

// notify persists a notification row and pushes it to the recipient's live
// streams. The row is the primary record; a failed push is not an error, and
// a failed insert is reported to the caller who decides whether the flow
// survives it (creating the edge/message is never rolled back for a missed
// notification).
func notify(recipientID uint, senderID *uint, typ models.NotificationType, message string) error {
	notification := models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        typ,
		Message:     message,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		return err
	}

	hub.GlobalHub.Notify(recipientID, hub.Event{
		Type: "notification",
		Payload: notificationPayload{
			ID:        notification.ID,
			Type:      string(typ),
			Message:   message,
			CreatedAt: notification.CreatedAt.Format(time.RFC3339),
		},
	})
	return nil
}

type notificationPayload struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
