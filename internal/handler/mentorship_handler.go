package handler

import (
	"net/http"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// MentorshipInput pairs a mentor with a mentee.
type MentorshipInput struct {
	MentorID       uint   `json:"mentor_id" binding:"required"`
	MenteeID       uint   `json:"mentee_id" binding:"required"`
	FocusArea      string `json:"focus_area" binding:"required,max=100"`
	Goals          string `json:"goals" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"omitempty,min=1,max=36"`
}

// MentorshipStatusInput transitions a program's status.
type MentorshipStatusInput struct {
	Status           string `json:"status" binding:"required,oneof=active completed paused cancelled"`
	CoordinatorNotes string `json:"coordinator_notes"`
}

// MentorshipFeedbackInput is a participant's feedback on their program.
type MentorshipFeedbackInput struct {
	Feedback string `json:"feedback" binding:"required"`
}

// endregion

// CreateMentorship godoc
// @Summary      Create a mentorship pairing
// @Description  Coordinator pairs a mentor (who must have opted in) with a distinct mentee.
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body MentorshipInput true "Pairing details"
// @Success      201  {object}  models.MentorshipProgram
// @Failure      400  {object}  ErrorResponse
// @Router       /mentorship [post]
func CreateMentorship(c *gin.Context) {
	var input MentorshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.MentorID == input.MenteeID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentor and mentee must be different alumni"})
		return
	}

	var mentor models.AlumniProfile
	if err := database.DB.First(&mentor, input.MentorID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentor not found"})
		return
	}
	if !mentor.IsMentor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected alumni has not opted in as a mentor"})
		return
	}

	var mentee models.AlumniProfile
	if err := database.DB.First(&mentee, input.MenteeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mentee not found"})
		return
	}

	program := models.MentorshipProgram{
		MentorID:       input.MentorID,
		MenteeID:       input.MenteeID,
		FocusArea:      sanitizeText(input.FocusArea),
		Goals:          sanitizeText(input.Goals),
		DurationMonths: 6,
		Status:         models.ProgramActive,
		StartDate:      timeNow(),
	}
	if input.DurationMonths > 0 {
		program.DurationMonths = input.DurationMonths
	}

	if err := database.DB.Create(&program).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mentorship program"})
		return
	}

	c.JSON(http.StatusCreated, program)
}

// ListMentorships godoc
// @Summary      List mentorship programs
// @Description  Coordinator view of all programs, filterable by status.
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Program status"
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[models.MentorshipProgram]
// @Router       /mentorship [get]
func ListMentorships(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.MentorshipProgram{}).
		Preload("Mentor.User").
		Preload("Mentee.User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	response, err := Paginate[models.MentorshipProgram](query.Order("created_at DESC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve programs"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListMyMentorships godoc
// @Summary      List own mentorship programs
// @Description  Programs where the caller is mentor or mentee.
// @Tags         mentorship
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.MentorshipProgram
// @Router       /mentorship/mine [get]
func ListMyMentorships(c *gin.Context) {
	alumni := currentAlumni(c)

	var programs []models.MentorshipProgram
	err := database.DB.
		Preload("Mentor.User").
		Preload("Mentee.User").
		Where("mentor_id = ? OR mentee_id = ?", alumni.ID, alumni.ID).
		Order("created_at DESC").
		Find(&programs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve programs"})
		return
	}

	c.JSON(http.StatusOK, programs)
}

// UpdateMentorshipStatus godoc
// @Summary      Transition a program's status
// @Description  Coordinator moves a program between active, paused, completed and cancelled. Completing sets the end date.
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                   true  "Program ID"
// @Param        input body  MentorshipStatusInput true  "New status"
// @Success      200  {object}  models.MentorshipProgram
// @Failure      404  {object}  ErrorResponse
// @Router       /mentorship/{id}/status [put]
func UpdateMentorshipStatus(c *gin.Context) {
	programID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program ID"})
		return
	}

	var input MentorshipStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var program models.MentorshipProgram
	if err := database.DB.First(&program, programID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return
	}

	updates := map[string]interface{}{"status": models.ProgramStatus(input.Status)}
	if input.CoordinatorNotes != "" {
		updates["coordinator_notes"] = sanitizeText(input.CoordinatorNotes)
	}
	if models.ProgramStatus(input.Status) == models.ProgramCompleted {
		now := timeNow()
		updates["end_date"] = &now
	}

	if err := database.DB.Model(&program).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update program"})
		return
	}

	c.JSON(http.StatusOK, program)
}

// SubmitMentorshipFeedback godoc
// @Summary      Submit feedback on a program
// @Description  Participants write into their own feedback slot; mentors and mentees each have one.
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                     true  "Program ID"
// @Param        input body  MentorshipFeedbackInput true  "Feedback"
// @Success      200  {object}  models.MentorshipProgram
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /mentorship/{id}/feedback [post]
func SubmitMentorshipFeedback(c *gin.Context) {
	alumni := currentAlumni(c)
	programID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid program ID"})
		return
	}

	var input MentorshipFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var program models.MentorshipProgram
	if err := database.DB.First(&program, programID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Program not found"})
		return
	}

	var column string
	switch alumni.ID {
	case program.MentorID:
		column = "mentor_feedback"
	case program.MenteeID:
		column = "mentee_feedback"
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a participant of this program"})
		return
	}

	if err := database.DB.Model(&program).
		Update(column, sanitizeText(input.Feedback)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	c.JSON(http.StatusOK, program)
}
