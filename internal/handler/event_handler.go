package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// region --- DTOs ---

// EventInput is the payload for creating or updating an event.
type EventInput struct {
	Title                 string     `json:"title" binding:"required,max=200"`
	Description           string     `json:"description" binding:"required"`
	EventType             string     `json:"event_type" binding:"required,oneof=reunion networking seminar social fundraising career webinar other"`
	StartDate             time.Time  `json:"start_date" binding:"required"`
	EndDate               time.Time  `json:"end_date" binding:"required"`
	RegistrationDeadline  *time.Time `json:"registration_deadline"`
	IsVirtual             bool       `json:"is_virtual"`
	Venue                 string     `json:"venue" binding:"max=200"`
	Address               string     `json:"address"`
	VirtualLink           string     `json:"virtual_link"`
	MaxAttendees          *int       `json:"max_attendees" binding:"omitempty,min=1"`
	RegistrationFee       float64    `json:"registration_fee" binding:"min=0"`
	RequiresApproval      bool       `json:"requires_approval"`
	TargetGraduationYears []uint     `json:"target_graduation_years"`
}

// EventStatusInput transitions an event's lifecycle status.
type EventStatusInput struct {
	Status string `json:"status" binding:"required,oneof=upcoming ongoing completed cancelled"`
}

// RegistrationInput carries optional registration details.
type RegistrationInput struct {
	SpecialNeeds string `json:"special_needs"`
}

// RegistrationStatusInput is used by coordinators to move a registration.
type RegistrationStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled waitlist"`
}

// endregion

func applyEventInput(event *models.Event, input *EventInput) {
	event.Title = sanitizeText(input.Title)
	event.Description = sanitizeText(input.Description)
	event.EventType = models.EventType(input.EventType)
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	event.RegistrationDeadline = input.RegistrationDeadline
	event.IsVirtual = input.IsVirtual
	event.Venue = sanitizeText(input.Venue)
	event.Address = sanitizeText(input.Address)
	event.VirtualLink = input.VirtualLink
	event.MaxAttendees = input.MaxAttendees
	event.RegistrationFee = input.RegistrationFee
	event.RequiresApproval = input.RequiresApproval
}

func loadTargetYears(tx *gorm.DB, ids []uint) ([]*models.GraduationYear, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var years []*models.GraduationYear
	if err := tx.Find(&years, ids).Error; err != nil {
		return nil, err
	}
	return years, nil
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body EventInput true "Event details"
// @Success      201  {object}  models.Event
// @Failure      400  {object}  ErrorResponse
// @Router       /events [post]
func CreateEvent(c *gin.Context) {
	coordinator := currentCoordinator(c)

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.EndDate.Before(input.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
		return
	}

	event := models.Event{OrganizerID: coordinator.ID, Status: models.EventUpcoming}
	applyEventInput(&event, &input)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		years, err := loadTargetYears(tx, input.TargetGraduationYears)
		if err != nil {
			return err
		}
		event.TargetGraduationYears = years
		return tx.Create(&event).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents godoc
// @Summary      List events
// @Description  Paginated event listing, filterable by status and type.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Event status"
// @Param        type   query string false "Event type"
// @Param        page   query int    false "Page number"
// @Param        limit  query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[models.Event]
// @Router       /events [get]
func ListEvents(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.Event{}).
		Preload("Organizer.User").
		Preload("TargetGraduationYears")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if eventType := c.Query("type"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	response, err := Paginate[models.Event](query.Order("start_date ASC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  models.Event
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id} [get]
func GetEvent(c *gin.Context) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var event models.Event
	err := database.DB.
		Preload("Organizer.User").
		Preload("TargetGraduationYears").
		First(&event, eventID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// eventOwnedBy fetches an event and verifies the coordinator organizes it.
func eventOwnedBy(c *gin.Context, coordinatorID uint) (*models.Event, bool) {
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return nil, false
	}

	var event models.Event
	if err := database.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return nil, false
	}
	if event.OrganizerID != coordinatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the organizer can manage this event"})
		return nil, false
	}
	return &event, true
}

// UpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int        true  "Event ID"
// @Param        input body  EventInput true  "Event details"
// @Success      200  {object}  models.Event
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id} [put]
func UpdateEvent(c *gin.Context) {
	coordinator := currentCoordinator(c)
	event, ok := eventOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	var input EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.EndDate.Before(input.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not be before start date"})
		return
	}

	applyEventInput(event, &input)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		years, err := loadTargetYears(tx, input.TargetGraduationYears)
		if err != nil {
			return err
		}
		if err := tx.Save(event).Error; err != nil {
			return err
		}
		return tx.Model(event).Association("TargetGraduationYears").Replace(years)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateEventStatus godoc
// @Summary      Transition an event's status
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int              true  "Event ID"
// @Param        input body  EventStatusInput true  "New status"
// @Success      200  {object}  models.Event
// @Failure      403  {object}  ErrorResponse
// @Router       /events/{id}/status [put]
func UpdateEventStatus(c *gin.Context) {
	coordinator := currentCoordinator(c)
	event, ok := eventOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	var input EventStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Model(event).Update("status", models.EventStatus(input.Status)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event status"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// RegisterForEvent godoc
// @Summary      Register for an event
// @Description  Creates a registration with a uuid reference code. Events past their deadline or not upcoming reject with 400; a full event waitlists instead of confirming; an existing registration is a 409.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int               true   "Event ID"
// @Param        input body  RegistrationInput false  "Registration details"
// @Success      201  {object}  models.EventRegistration
// @Failure      400  {object}  ErrorResponse "Registration closed"
// @Failure      409  {object}  ErrorResponse "Already registered"
// @Router       /events/{id}/register [post]
func RegisterForEvent(c *gin.Context) {
	alumni := currentAlumni(c)
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var input RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event
	if err := database.DB.First(&event, eventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if !event.RegistrationOpen(timeNow()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Registration for this event is closed"})
		return
	}

	registration := models.EventRegistration{
		EventID:       event.ID,
		AlumniID:      alumni.ID,
		ReferenceCode: uuid.NewString(),
		SpecialNeeds:  sanitizeText(input.SpecialNeeds),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ? AND alumni_id = ?", event.ID, alumni.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return errAlreadyRegistered
		}

		registration.Status = models.RegistrationPending
		if !event.RequiresApproval {
			registration.Status = models.RegistrationConfirmed
		}
		if event.MaxAttendees != nil {
			var confirmed int64
			if err := tx.Model(&models.EventRegistration{}).
				Where("event_id = ? AND status = ?", event.ID, models.RegistrationConfirmed).
				Count(&confirmed).Error; err != nil {
				return err
			}
			if confirmed >= int64(*event.MaxAttendees) {
				registration.Status = models.RegistrationWaitlist
			}
		}
		return tx.Create(&registration).Error
	})
	if errors.Is(err, errAlreadyRegistered) || errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "You are already registered for this event"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, registration)
}

var errAlreadyRegistered = errors.New("already registered")

// CancelRegistration godoc
// @Summary      Cancel own event registration
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  models.EventRegistration
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id}/register [delete]
func CancelRegistration(c *gin.Context) {
	alumni := currentAlumni(c)
	eventID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var registration models.EventRegistration
	err := database.DB.
		Where("event_id = ? AND alumni_id = ?", eventID, alumni.ID).
		First(&registration).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	if err := database.DB.Model(&registration).Update("status", models.RegistrationCancelled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel registration"})
		return
	}

	c.JSON(http.StatusOK, registration)
}

// ListEventRegistrations godoc
// @Summary      List an event's registrations
// @Description  Organizer-only attendee listing.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Event ID"
// @Success      200  {array}   models.EventRegistration
// @Failure      403  {object}  ErrorResponse
// @Router       /events/{id}/registrations [get]
func ListEventRegistrations(c *gin.Context) {
	coordinator := currentCoordinator(c)
	event, ok := eventOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	var registrations []models.EventRegistration
	err := database.DB.
		Preload("Alumni.User").
		Where("event_id = ?", event.ID).
		Order("created_at ASC").
		Find(&registrations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve registrations"})
		return
	}

	c.JSON(http.StatusOK, registrations)
}

// UpdateRegistrationStatus godoc
// @Summary      Update a registration's status
// @Description  Organizer confirms, cancels, or waitlists a registration.
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id             path  int                     true  "Event ID"
// @Param        registrationId path  int                     true  "Registration ID"
// @Param        input          body  RegistrationStatusInput true  "New status"
// @Success      200  {object}  models.EventRegistration
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id}/registrations/{registrationId} [put]
func UpdateRegistrationStatus(c *gin.Context) {
	coordinator := currentCoordinator(c)
	event, ok := eventOwnedBy(c, coordinator.ID)
	if !ok {
		return
	}

	registrationID, ok := parseIDParam(c, "registrationId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration ID"})
		return
	}

	var input RegistrationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var registration models.EventRegistration
	err := database.DB.
		Where("id = ? AND event_id = ?", registrationID, event.ID).
		First(&registration).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	if err := database.DB.Model(&registration).
		Update("status", models.RegistrationStatus(input.Status)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update registration"})
		return
	}

	c.JSON(http.StatusOK, registration)
}

// ListMyRegistrations godoc
// @Summary      List own event registrations
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.EventRegistration
// @Router       /events/registrations/mine [get]
func ListMyRegistrations(c *gin.Context) {
	alumni := currentAlumni(c)

	var registrations []models.EventRegistration
	err := database.DB.
		Preload("Event").
		Where("alumni_id = ?", alumni.ID).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve registrations"})
		return
	}

	c.JSON(http.StatusOK, registrations)
}
