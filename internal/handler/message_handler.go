package handler

import (
	"errors"
	"net/http"
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// MessageInput creates a new message.
type MessageInput struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Subject     string `json:"subject" binding:"required,max=200"`
	Content     string `json:"content" binding:"required"`
	Attachment  string `json:"attachment"`
}

// MessageEditInput edits subject/content/attachment within the edit window.
type MessageEditInput struct {
	Subject    string `json:"subject" binding:"required,max=200"`
	Content    string `json:"content" binding:"required"`
	Attachment string `json:"attachment"`
}

// ReplyInput creates a reply on a message thread.
type ReplyInput struct {
	Content    string `json:"content" binding:"required"`
	Attachment string `json:"attachment"`
}

// BulkDeleteInput selects received messages for deletion.
type BulkDeleteInput struct {
	MessageIDs []uint `json:"message_ids" binding:"required,min=1"`
}

// MessageSender describes the role-polymorphic sender of a message or reply.
type MessageSender struct {
	Role  models.SenderType `json:"role"`
	ID    uint              `json:"id"`
	Name  string            `json:"name"`
	Email string            `json:"email"`
}

// ReplyResponse is a single thread reply.
type ReplyResponse struct {
	ID         uint          `json:"id"`
	Sender     MessageSender `json:"sender"`
	Content    string        `json:"content"`
	Attachment string        `json:"attachment,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// MessageResponse is a message, optionally with its thread.
type MessageResponse struct {
	ID           uint                 `json:"id"`
	Sender       MessageSender        `json:"sender"`
	RecipientID  uint                 `json:"recipient_id"`
	Recipient    string               `json:"recipient"`
	Subject      string               `json:"subject"`
	Content      string               `json:"content"`
	Status       models.MessageStatus `json:"status"`
	Attachment   string               `json:"attachment,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	ReadAt       *time.Time           `json:"read_at,omitempty"`
	CanEdit      *bool                `json:"can_edit,omitempty"`
	EditDeadline *time.Time           `json:"edit_deadline,omitempty"`
	Replies      []ReplyResponse      `json:"replies,omitempty"`
}

func newMessageSender(typ models.SenderType, profileID uint, user *models.User) MessageSender {
	sender := MessageSender{Role: typ, ID: profileID}
	if user != nil {
		sender.Name = user.FullName()
		sender.Email = user.Email
	}
	return sender
}

func newMessageResponse(m models.Message, withThread bool) MessageResponse {
	response := MessageResponse{
		ID:          m.ID,
		Sender:      newMessageSender(m.SenderType, m.Sender().ProfileID(), m.SenderUser()),
		RecipientID: m.RecipientID,
		Recipient:   m.Recipient.FullName(),
		Subject:     m.Subject,
		Content:     m.Content,
		Status:      m.Status,
		Attachment:  m.Attachment,
		CreatedAt:   m.CreatedAt,
		ReadAt:      m.ReadAt,
	}
	if withThread {
		for _, reply := range m.Replies {
			response.Replies = append(response.Replies, ReplyResponse{
				ID:         reply.ID,
				Sender:     newMessageSender(reply.SenderType, reply.Sender().ProfileID(), reply.SenderUser()),
				Content:    reply.Content,
				Attachment: reply.Attachment,
				CreatedAt:  reply.CreatedAt,
			})
		}
	}
	return response
}

// endregion

// messagePreloads attaches every association a message response needs.
func messagePreloads(db *gorm.DB, withThread bool) *gorm.DB {
	db = db.
		Preload("SenderAlumni.User").
		Preload("SenderAdmin.User").
		Preload("SenderCoordinator.User").
		Preload("Recipient.User")
	if withThread {
		db = db.
			Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
			Preload("Replies.SenderAlumni.User").
			Preload("Replies.SenderAdmin.User").
			Preload("Replies.SenderCoordinator.User")
	}
	return db
}

// callerSender resolves the caller's role profile into a SenderRef. Used by
// the shared send/reply paths below; the role middlewares guarantee the
// profile exists.
func callerSender(c *gin.Context) (models.SenderRef, bool) {
	user := currentUser(c)
	switch user.EffectiveRole() {
	case models.RoleAlumni:
		return models.AlumniSender(currentAlumni(c).ID), true
	case models.RoleAdmin:
		return models.AdminSender(currentAdmin(c).ID), true
	case models.RoleCoordinator:
		return models.CoordinatorSender(currentCoordinator(c).ID), true
	}
	return models.SenderRef{}, false
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Sends a message to an alumni. Alumni senders require the recipient to allow contact; every recipient must be verified.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MessageInput true "Message"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipient not found"
// @Router       /messages [post]
func SendMessage(c *gin.Context) {
	ref, ok := callerSender(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}

	var input MessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var recipient models.AlumniProfile
	err := database.DB.Preload("User").First(&recipient, input.RecipientID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}
	if !recipient.User.IsVerified {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return
	}
	if ref.Type == models.SenderAlumni {
		if !recipient.AllowContact {
			c.JSON(http.StatusForbidden, gin.H{"error": "Recipient does not accept messages"})
			return
		}
		if *ref.AlumniID == recipient.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
			return
		}
	}

	message := models.Message{
		RecipientID: recipient.ID,
		Subject:     sanitizeText(input.Subject),
		Content:     sanitizeText(input.Content),
		Attachment:  input.Attachment,
		Status:      models.MessageSent,
	}
	if err := message.SetSender(ref); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}

	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Secondary effect; the message stands even if this fails.
	_ = notify(recipient.UserID, &currentUser(c).ID, models.NotificationMessage,
		"New message: "+message.Subject)

	messagePreloads(database.DB, false).First(&message, message.ID)
	c.JSON(http.StatusCreated, newMessageResponse(message, false))
}

// GetInbox godoc
// @Summary      List received messages
// @Description  Opens the caller's inbox. As a side effect, all messages still in "sent" transition to "delivered".
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[MessageResponse]
// @Failure      403  {object}  ErrorResponse
// @Router       /messages/inbox [get]
func GetInbox(c *gin.Context) {
	recipient := currentAlumni(c)
	page, limit := pageParams(c)

	// Viewing the inbox marks unseen-but-undelivered messages as delivered.
	// This is distinct from the per-message read transition.
	err := database.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND status = ?", recipient.ID, models.MessageSent).
		Update("status", models.MessageDelivered).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open inbox"})
		return
	}

	query := database.DB.Model(&models.Message{}).Where("recipient_id = ?", recipient.ID)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count messages"})
		return
	}

	var received []models.Message
	err = messagePreloads(query, false).
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&received).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	responses := make([]MessageResponse, 0, len(received))
	for _, m := range received {
		responses = append(responses, newMessageResponse(m, false))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// GetSentMessages godoc
// @Summary      List sent messages
// @Description  Lists messages the caller has sent, with per-message edit-window state.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[MessageResponse]
// @Failure      403  {object}  ErrorResponse
// @Router       /messages/sent [get]
func GetSentMessages(c *gin.Context) {
	ref, ok := callerSender(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}
	page, limit := pageParams(c)

	query := senderScope(database.DB.Model(&models.Message{}), ref)

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count messages"})
		return
	}

	var sent []models.Message
	err := messagePreloads(query, false).
		Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&sent).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve messages"})
		return
	}

	now := timeNow()
	responses := make([]MessageResponse, 0, len(sent))
	for _, m := range sent {
		response := newMessageResponse(m, false)
		canEdit := m.Editable(now)
		deadline := m.EditDeadline()
		response.CanEdit = &canEdit
		response.EditDeadline = &deadline
		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// senderScope narrows a message query to those sent by ref.
func senderScope(db *gorm.DB, ref models.SenderRef) *gorm.DB {
	switch ref.Type {
	case models.SenderAlumni:
		return db.Where("sender_type = ? AND sender_alumni_id = ?", ref.Type, *ref.AlumniID)
	case models.SenderAdmin:
		return db.Where("sender_type = ? AND sender_admin_id = ?", ref.Type, *ref.AdminID)
	default:
		return db.Where("sender_type = ? AND sender_coordinator_id = ?", ref.Type, *ref.CoordinatorID)
	}
}

// loadThreadMessage fetches a message with its thread and checks the caller
// is a party to it (recipient or original sender).
func loadThreadMessage(c *gin.Context, ref models.SenderRef) (*models.Message, bool, bool) {
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return nil, false, false
	}

	var message models.Message
	err := messagePreloads(database.DB, true).First(&message, messageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve message"})
		}
		return nil, false, false
	}

	isRecipient := ref.Type == models.SenderAlumni && ref.AlumniID != nil && *ref.AlumniID == message.RecipientID
	if !isRecipient && !message.IsFromSender(ref) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return nil, false, false
	}
	return &message, isRecipient, true
}

// ViewMessage godoc
// @Summary      View a message thread
// @Description  Returns a message and its replies. Opening as the recipient marks the message read (idempotent on repeat views).
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [get]
func ViewMessage(c *gin.Context) {
	ref, ok := callerSender(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}

	message, isRecipient, ok := loadThreadMessage(c, ref)
	if !ok {
		return
	}

	if isRecipient && message.Status != models.MessageRead {
		now := timeNow()
		message.Status = models.MessageRead
		message.ReadAt = &now
		if err := database.DB.Model(message).Select("status", "read_at").
			Updates(map[string]interface{}{"status": models.MessageRead, "read_at": now}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
			return
		}
	}

	c.JSON(http.StatusOK, newMessageResponse(*message, true))
}

// ReplyToMessage godoc
// @Summary      Reply to a message
// @Description  Adds a reply tagged with the replier's own role and resets the counterpart's visible state: a recipient reply flips the message back to delivered, a sender reply back to sent; read_at clears either way.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int        true  "Message ID"
// @Param        input body  ReplyInput true  "Reply"
// @Success      201  {object}  ReplyResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id}/reply [post]
func ReplyToMessage(c *gin.Context) {
	ref, ok := callerSender(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}

	message, isRecipient, ok := loadThreadMessage(c, ref)
	if !ok {
		return
	}

	var input ReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply := models.MessageReply{
		MessageID:  message.ID,
		ParentID:   nil, // reserved for future threaded replies
		Content:    sanitizeText(input.Content),
		Attachment: input.Attachment,
	}
	if err := reply.SetSender(ref); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}

	// The reply and the parent's state reset belong together.
	resetStatus := models.MessageSent
	if isRecipient {
		resetStatus = models.MessageDelivered
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reply).Error; err != nil {
			return err
		}
		return tx.Model(&models.Message{}).Where("id = ?", message.ID).
			Select("status", "read_at").
			Updates(map[string]interface{}{"status": resetStatus, "read_at": nil}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reply"})
		return
	}

	// Tell the counterpart there is new activity.
	counterpart := message.Recipient.UserID
	if isRecipient {
		if senderUser := message.SenderUser(); senderUser != nil {
			counterpart = senderUser.ID
		}
	}
	_ = notify(counterpart, &currentUser(c).ID, models.NotificationMessage,
		"New reply: "+message.Subject)

	c.JSON(http.StatusCreated, ReplyResponse{
		ID:         reply.ID,
		Sender:     newMessageSender(ref.Type, ref.ProfileID(), currentUser(c)),
		Content:    reply.Content,
		Attachment: reply.Attachment,
		CreatedAt:  reply.CreatedAt,
	})
}

// EditMessage godoc
// @Summary      Edit a sent message
// @Description  The original sender may edit subject, content, and attachment within 10 minutes of sending. After that the action is unavailable.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int              true  "Message ID"
// @Param        input body  MessageEditInput true  "Fields"
// @Success      200  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse "Edit window expired"
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [put]
func EditMessage(c *gin.Context) {
	ref, ok := callerSender(c)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "No sending profile"})
		return
	}

	messageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	var message models.Message
	if err := senderScope(database.DB, ref).First(&message, messageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	if !message.Editable(timeNow()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages can only be edited within 10 minutes of sending"})
		return
	}

	var input MessageEditInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message.Subject = sanitizeText(input.Subject)
	message.Content = sanitizeText(input.Content)
	message.Attachment = input.Attachment
	if err := database.DB.Model(&message).Select("subject", "content", "attachment").
		Updates(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}

	messagePreloads(database.DB, false).First(&message, message.ID)
	c.JSON(http.StatusOK, newMessageResponse(message, false))
}

// DeleteMessage godoc
// @Summary      Delete a received message
// @Description  Hard-deletes a message the caller received. Replies cascade; the sender is not notified.
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Message ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /messages/{id} [delete]
func DeleteMessage(c *gin.Context) {
	recipient := currentAlumni(c)
	messageID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message ID"})
		return
	}

	result := database.DB.Unscoped().
		Where("id = ? AND recipient_id = ?", messageID, recipient.ID).
		Delete(&models.Message{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// BulkDeleteMessages godoc
// @Summary      Delete selected received messages
// @Description  Hard-deletes a batch of messages the caller received.
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body BulkDeleteInput true "Message IDs"
// @Success      200  {object}  map[string]interface{} "{"status": "success", "deleted": n}"
// @Failure      400  {object}  ErrorResponse
// @Router       /messages/bulk-delete [post]
func BulkDeleteMessages(c *gin.Context) {
	recipient := currentAlumni(c)

	var input BulkDeleteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := database.DB.Unscoped().
		Where("id IN ? AND recipient_id = ?", input.MessageIDs, recipient.ID).
		Delete(&models.Message{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "deleted": result.RowsAffected})
}
