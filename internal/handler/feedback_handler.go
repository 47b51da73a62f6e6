package handler

import (
	"net/http"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// FeedbackInput is an alumni-submitted note.
type FeedbackInput struct {
	Type    string `json:"type" binding:"omitempty,oneof=general technical feature_request complaint suggestion"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required"`
	Rating  *int   `json:"rating" binding:"omitempty,min=1,max=5"`
}

// FeedbackReplyInput is the coordinator's response.
type FeedbackReplyInput struct {
	Reply      string `json:"reply" binding:"required"`
	IsResolved bool   `json:"is_resolved"`
}

// SubmitFeedback godoc
// @Summary      Submit feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FeedbackInput true "Feedback"
// @Success      201  {object}  models.Feedback
// @Failure      400  {object}  ErrorResponse
// @Router       /feedback [post]
func SubmitFeedback(c *gin.Context) {
	alumni := currentAlumni(c)

	var input FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback := models.Feedback{
		AlumniID: alumni.ID,
		Type:     models.FeedbackGeneral,
		Subject:  sanitizeText(input.Subject),
		Body:     sanitizeText(input.Body),
		Rating:   input.Rating,
	}
	if input.Type != "" {
		feedback.Type = models.FeedbackType(input.Type)
	}

	if err := database.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListMyFeedback godoc
// @Summary      List own feedback
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Feedback
// @Router       /feedback/mine [get]
func ListMyFeedback(c *gin.Context) {
	alumni := currentAlumni(c)

	var feedback []models.Feedback
	err := database.DB.
		Where("alumni_id = ?", alumni.ID).
		Order("created_at DESC").
		Find(&feedback).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// ListFeedback godoc
// @Summary      List all feedback
// @Description  Coordinator view, filterable by type and resolution state.
// @Tags         feedback
// @Produce      json
// @Security     BearerAuth
// @Param        type     query string false "Feedback type"
// @Param        resolved query string false "Set to 0 for open items only"
// @Param        page     query int    false "Page number"
// @Param        limit    query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[models.Feedback]
// @Router       /feedback [get]
func ListFeedback(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.Feedback{}).Preload("Alumni.User")
	if feedbackType := c.Query("type"); feedbackType != "" {
		query = query.Where("type = ?", feedbackType)
	}
	if c.Query("resolved") == "0" {
		query = query.Where("is_resolved = ?", false)
	}

	response, err := Paginate[models.Feedback](query.Order("created_at DESC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ReplyToFeedback godoc
// @Summary      Reply to feedback
// @Description  Coordinator answers and optionally resolves an item. The submitter is notified.
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "Feedback ID"
// @Param        input body  FeedbackReplyInput true  "Reply"
// @Success      200  {object}  models.Feedback
// @Failure      404  {object}  ErrorResponse
// @Router       /feedback/{id}/reply [put]
func ReplyToFeedback(c *gin.Context) {
	feedbackID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid feedback ID"})
		return
	}

	var input FeedbackReplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var feedback models.Feedback
	err := database.DB.Preload("Alumni").First(&feedback, feedbackID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		return
	}

	err = database.DB.Model(&feedback).Updates(map[string]interface{}{
		"reply":       sanitizeText(input.Reply),
		"is_resolved": input.IsResolved,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reply"})
		return
	}

	_ = notify(feedback.Alumni.UserID, nil, models.NotificationSystem,
		"Your feedback \""+feedback.Subject+"\" received a reply")

	c.JSON(http.StatusOK, feedback)
}
