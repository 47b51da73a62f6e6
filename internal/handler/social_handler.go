package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/hub"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// region --- DTOs ---

// SocialActionResponse is the envelope for follow/friend mutations.
type SocialActionResponse struct {
	Status  string `json:"status" example:"success"`
	Action  string `json:"action,omitempty" example:"followed"`
	Message string `json:"message,omitempty"`
}

// RespondInput selects what to do with a pending friend request.
type RespondInput struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// NotificationResponse is a single feed entry.
type NotificationResponse struct {
	ID        uint         `json:"id"`
	Type      string       `json:"type"`
	Message   string       `json:"message"`
	Sender    *UserSummary `json:"sender,omitempty"`
	IsRead    bool         `json:"is_read"`
	CreatedAt string       `json:"created_at"`
}

// NotificationFeed wraps the feed listing.
type NotificationFeed struct {
	Results []NotificationResponse `json:"results"`
}

// endregion

func socialError(c *gin.Context, code int, message string) {
	c.JSON(code, SocialActionResponse{Status: "error", Message: message})
}

// friendshipExists checks the canonical row for two users, accepting either
// argument order.
func friendshipExists(db *gorm.DB, a, b uint) (bool, error) {
	lo, hi := models.CanonicalPair(a, b)
	var count int64
	err := db.Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", lo, hi).
		Count(&count).Error
	return count > 0, err
}

// ToggleFollow godoc
// @Summary      Toggle following a user
// @Description  Creates the follow edge if absent (notifying the target) or removes it if present. Toggling is the entire state machine.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target user ID"
// @Success      200  {object}  SocialActionResponse
// @Failure      400  {object}  SocialActionResponse "Self-follow"
// @Failure      404  {object}  SocialActionResponse "Target not found"
// @Router       /social/follow/{id} [post]
func ToggleFollow(c *gin.Context) {
	caller := currentUser(c)
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		socialError(c, http.StatusBadRequest, "Invalid target user ID")
		return
	}
	if targetID == caller.ID {
		socialError(c, http.StatusBadRequest, "Cannot follow yourself")
		return
	}

	if _, err := lookupUser(targetID); err != nil {
		socialError(c, http.StatusNotFound, "User not found")
		return
	}

	var existing models.Follow
	err := database.DB.
		Where("follower_id = ? AND following_id = ?", caller.ID, targetID).
		First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			socialError(c, http.StatusInternalServerError, "Failed to unfollow")
			return
		}
		c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "unfollowed"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		socialError(c, http.StatusInternalServerError, "Failed to check follow state")
		return
	}

	follow := models.Follow{FollowerID: caller.ID, FollowingID: targetID}
	if err := database.DB.Create(&follow).Error; err != nil {
		// A concurrent toggle created the edge first; that is the same outcome.
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			socialError(c, http.StatusInternalServerError, "Failed to follow")
			return
		}
	} else {
		_ = notify(targetID, &caller.ID, models.NotificationFollow,
			caller.FullName()+" started following you")
	}

	c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "followed"})
}

// SendFriendRequest godoc
// @Summary      Send a friend request
// @Description  Creates a pending request, or revives a rejected/cancelled one. A request already pending is reported without mutation; existing friends get a 400.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target user ID"
// @Success      200  {object}  SocialActionResponse "action is requested or already_pending"
// @Failure      400  {object}  SocialActionResponse "Self-request or already friends"
// @Failure      404  {object}  SocialActionResponse "Target not found"
// @Router       /social/friend-requests/{id} [post]
func SendFriendRequest(c *gin.Context) {
	caller := currentUser(c)
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		socialError(c, http.StatusBadRequest, "Invalid target user ID")
		return
	}
	if targetID == caller.ID {
		socialError(c, http.StatusBadRequest, "Cannot send a friend request to yourself")
		return
	}

	if _, err := lookupUser(targetID); err != nil {
		socialError(c, http.StatusNotFound, "User not found")
		return
	}

	friends, err := friendshipExists(database.DB, caller.ID, targetID)
	if err != nil {
		socialError(c, http.StatusInternalServerError, "Failed to check friendship")
		return
	}
	if friends {
		socialError(c, http.StatusBadRequest, "Already friends")
		return
	}

	var existing models.FriendRequest
	err = database.DB.
		Where("sender_id = ? AND receiver_id = ?", caller.ID, targetID).
		First(&existing).Error
	switch {
	case err == nil && existing.Status == models.RequestPending:
		c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "already_pending"})
		return
	case err == nil:
		// Rejected or cancelled earlier: reuse the row instead of inserting.
		if err := database.DB.Model(&existing).Update("status", models.RequestPending).Error; err != nil {
			socialError(c, http.StatusInternalServerError, "Failed to send request")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		request := models.FriendRequest{
			SenderID:   caller.ID,
			ReceiverID: targetID,
			Status:     models.RequestPending,
		}
		if err := database.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&request).Error; err != nil {
			socialError(c, http.StatusInternalServerError, "Failed to send request")
			return
		}
	default:
		socialError(c, http.StatusInternalServerError, "Failed to check existing request")
		return
	}

	_ = notify(targetID, &caller.ID, models.NotificationFriendRequest,
		caller.FullName()+" sent you a friend request")

	c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "requested"})
}

// RespondFriendRequest godoc
// @Summary      Respond to a friend request
// @Description  The receiver accepts or rejects a pending request. Accepting creates the canonical friendship and notifies the sender atomically; responding to a non-pending request is an error.
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Friend request ID"
// @Param        input body  RespondInput true  "accept or reject"
// @Success      200  {object}  SocialActionResponse
// @Failure      400  {object}  SocialActionResponse "Already processed"
// @Failure      404  {object}  SocialActionResponse "Not found or not addressed to caller"
// @Router       /social/friend-requests/{id}/respond [post]
func RespondFriendRequest(c *gin.Context) {
	caller := currentUser(c)
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		socialError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var input RespondInput
	if err := c.ShouldBindJSON(&input); err != nil {
		socialError(c, http.StatusBadRequest, err.Error())
		return
	}

	var request models.FriendRequest
	if err := database.DB.First(&request, requestID).Error; err != nil {
		socialError(c, http.StatusNotFound, "Friend request not found")
		return
	}
	if request.ReceiverID != caller.ID {
		socialError(c, http.StatusNotFound, "Friend request not found")
		return
	}
	if request.Status != models.RequestPending {
		socialError(c, http.StatusBadRequest, "Friend request already processed")
		return
	}

	if input.Action == "reject" {
		if err := database.DB.Model(&request).Update("status", models.RequestRejected).Error; err != nil {
			socialError(c, http.StatusInternalServerError, "Failed to update request")
			return
		}
		c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "rejected"})
		return
	}

	// Accepting flips the request, creates the friendship, and records the
	// notification in one transaction.
	notification := models.Notification{
		RecipientID: request.SenderID,
		SenderID:    &caller.ID,
		Type:        models.NotificationFriendAcceptance,
		Message:     caller.FullName() + " accepted your friend request",
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}
		friendship := models.NewFriendship(request.SenderID, request.ReceiverID)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&friendship).Error; err != nil {
			return err
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		socialError(c, http.StatusInternalServerError, "Failed to accept request")
		return
	}

	hub.GlobalHub.Notify(request.SenderID, hub.Event{
		Type: "notification",
		Payload: notificationPayload{
			ID:        notification.ID,
			Type:      string(notification.Type),
			Message:   notification.Message,
			CreatedAt: notification.CreatedAt.Format(time.RFC3339),
		},
	})

	c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "accepted"})
}

// CancelFriendRequest godoc
// @Summary      Cancel a sent friend request
// @Description  The sender flips their own pending request to cancelled.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Friend request ID"
// @Success      200  {object}  SocialActionResponse
// @Failure      400  {object}  SocialActionResponse "Not pending"
// @Failure      404  {object}  SocialActionResponse
// @Router       /social/friend-requests/{id}/cancel [post]
func CancelFriendRequest(c *gin.Context) {
	caller := currentUser(c)
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		socialError(c, http.StatusBadRequest, "Invalid request ID")
		return
	}

	var request models.FriendRequest
	if err := database.DB.First(&request, requestID).Error; err != nil || request.SenderID != caller.ID {
		socialError(c, http.StatusNotFound, "Friend request not found")
		return
	}
	if request.Status != models.RequestPending {
		socialError(c, http.StatusBadRequest, "Friend request already processed")
		return
	}

	if err := database.DB.Model(&request).Update("status", models.RequestCancelled).Error; err != nil {
		socialError(c, http.StatusInternalServerError, "Failed to cancel request")
		return
	}

	c.JSON(http.StatusOK, SocialActionResponse{Status: "success", Action: "cancelled"})
}

// ListFriends godoc
// @Summary      List friends
// @Description  Lists the caller's friends from canonical friendship rows.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  UserSummary
// @Router       /social/friends [get]
func ListFriends(c *gin.Context) {
	caller := currentUser(c)

	var friendships []models.Friendship
	err := database.DB.
		Preload("User1").Preload("User2").
		Where("user1_id = ? OR user2_id = ?", caller.ID, caller.ID).
		Find(&friendships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list friends"})
		return
	}

	friends := make([]UserSummary, 0, len(friendships))
	for _, f := range friendships {
		other := f.User1
		if f.User1ID == caller.ID {
			other = f.User2
		}
		if summary := newUserSummary(&other); summary != nil {
			friends = append(friends, *summary)
		}
	}

	c.JSON(http.StatusOK, friends)
}

// ListFollowers godoc
// @Summary      List followers
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  UserSummary
// @Router       /social/followers [get]
func ListFollowers(c *gin.Context) {
	caller := currentUser(c)

	var follows []models.Follow
	err := database.DB.Preload("Follower").
		Where("following_id = ?", caller.ID).
		Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list followers"})
		return
	}

	followers := make([]UserSummary, 0, len(follows))
	for _, f := range follows {
		if summary := newUserSummary(&f.Follower); summary != nil {
			followers = append(followers, *summary)
		}
	}
	c.JSON(http.StatusOK, followers)
}

// ListFollowing godoc
// @Summary      List followed users
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  UserSummary
// @Router       /social/following [get]
func ListFollowing(c *gin.Context) {
	caller := currentUser(c)

	var follows []models.Follow
	err := database.DB.Preload("Following").
		Where("follower_id = ?", caller.ID).
		Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list following"})
		return
	}

	following := make([]UserSummary, 0, len(follows))
	for _, f := range follows {
		if summary := newUserSummary(&f.Following); summary != nil {
			following = append(following, *summary)
		}
	}
	c.JSON(http.StatusOK, following)
}

// region --- Notifications ---

const notificationFeedLimit = 100

// GetNotifications godoc
// @Summary      Notification feed
// @Description  Returns the caller's most recent notifications, optionally only unread ones.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread query  string  false  "Set to 1 to filter unread"
// @Success      200  {object}  NotificationFeed
// @Router       /notifications [get]
func GetNotifications(c *gin.Context) {
	caller := currentUser(c)

	query := database.DB.Preload("Sender").
		Where("recipient_id = ?", caller.ID)
	if c.Query("unread") == "1" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(notificationFeedLimit).Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	results := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		results = append(results, NotificationResponse{
			ID:        n.ID,
			Type:      string(n.Type),
			Message:   n.Message,
			Sender:    newUserSummary(n.Sender),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, NotificationFeed{Results: results})
}

// MarkNotificationRead godoc
// @Summary      Mark a notification read
// @Description  Idempotent; only the owning recipient may mark it.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  map[string]string "{"status": "success"}"
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [post]
func MarkNotificationRead(c *gin.Context) {
	caller := currentUser(c)
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	err := database.DB.
		Where("id = ? AND recipient_id = ?", notificationID, caller.ID).
		First(&notification).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if !notification.IsRead {
		now := timeNow()
		if err := database.DB.Model(&notification).
			Select("is_read", "read_at").
			Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// MarkAllNotificationsRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /notifications/read-all [post]
func MarkAllNotificationsRead(c *gin.Context) {
	caller := currentUser(c)

	err := database.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", caller.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": timeNow()}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteNotification godoc
// @Summary      Delete a notification
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Notification ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id} [delete]
func DeleteNotification(c *gin.Context) {
	caller := currentUser(c)
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.
		Where("id = ? AND recipient_id = ?", notificationID, caller.ID).
		Delete(&models.Notification{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// StreamNotifications godoc
// @Summary      Live notification stream
// @Description  Server-sent events stream of new notifications for the caller.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Router       /notifications/stream [get]
func StreamNotifications(c *gin.Context) {
	caller := currentUser(c)

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(caller.ID, client)
	defer hub.GlobalHub.Unsubscribe(caller.ID, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
