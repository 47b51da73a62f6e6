package handler

import (
	"net/http"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// region --- DTOs ---

// DonationInput is the payload for pledging a donation.
type DonationInput struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3"`
	Type          string  `json:"type" binding:"required,oneof=general scholarship infrastructure research emergency other"`
	PaymentMethod string  `json:"payment_method" binding:"max=50"`
	IsAnonymous   bool    `json:"is_anonymous"`
	PublicMessage string  `json:"public_message"`
	Campaign      string  `json:"campaign" binding:"max=100"`
}

// DonationStatusInput settles a donation's payment outcome.
type DonationStatusInput struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=pending completed failed refunded"`
	Notes         string `json:"notes"`
}

// PublicDonation is the recent-donations listing entry. Anonymous donations
// keep their amount visible but hide the donor.
type PublicDonation struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Type          string  `json:"type"`
	DonorName     string  `json:"donor_name"`
	PublicMessage string  `json:"public_message,omitempty"`
	Campaign      string  `json:"campaign,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

// endregion

// CreateDonation godoc
// @Summary      Pledge a donation
// @Description  Records a pending donation with a generated transaction ID. Payment settlement is a separate coordinator step.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body DonationInput true "Donation details"
// @Success      201  {object}  models.Donation
// @Failure      400  {object}  ErrorResponse
// @Router       /donations [post]
func CreateDonation(c *gin.Context) {
	alumni := currentAlumni(c)

	var input DonationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation := models.Donation{
		DonorID:       alumni.ID,
		Amount:        input.Amount,
		Type:          models.DonationType(input.Type),
		PaymentStatus: models.PaymentPending,
		PaymentMethod: input.PaymentMethod,
		TransactionID: uuid.NewString(),
		IsAnonymous:   input.IsAnonymous,
		PublicMessage: sanitizeText(input.PublicMessage),
		Campaign:      sanitizeText(input.Campaign),
	}
	if input.Currency != "" {
		donation.Currency = input.Currency
	}

	if err := database.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record donation"})
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// ListMyDonations godoc
// @Summary      List own donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Donation
// @Router       /donations/mine [get]
func ListMyDonations(c *gin.Context) {
	alumni := currentAlumni(c)

	var donations []models.Donation
	err := database.DB.
		Where("donor_id = ?", alumni.ID).
		Order("created_at DESC").
		Find(&donations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	c.JSON(http.StatusOK, donations)
}

// ListRecentDonations godoc
// @Summary      Recent completed donations
// @Description  Public listing of completed donations. Anonymous donors appear as "Anonymous".
// @Tags         donations
// @Produce      json
// @Success      200  {array}  PublicDonation
// @Router       /donations/recent [get]
func ListRecentDonations(c *gin.Context) {
	var donations []models.Donation
	err := database.DB.
		Preload("Donor.User").
		Where("payment_status = ?", models.PaymentCompleted).
		Order("created_at DESC").
		Limit(50).
		Find(&donations).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	results := make([]PublicDonation, 0, len(donations))
	for _, d := range donations {
		name := "Anonymous"
		if !d.IsAnonymous {
			name = d.Donor.User.FullName()
		}
		results = append(results, PublicDonation{
			Amount:        d.Amount,
			Currency:      d.Currency,
			Type:          string(d.Type),
			DonorName:     name,
			PublicMessage: d.PublicMessage,
			Campaign:      d.Campaign,
			CreatedAt:     d.CreatedAt.Format("2006-01-02"),
		})
	}

	c.JSON(http.StatusOK, results)
}

// ListDonations godoc
// @Summary      List all donations
// @Description  Coordinator view, filterable by payment status and campaign.
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        status   query string false "Payment status"
// @Param        campaign query string false "Campaign"
// @Param        page     query int    false "Page number"
// @Param        limit    query int    false "Items per page"
// @Success      200  {object}  PaginatedResponse[models.Donation]
// @Router       /donations [get]
func ListDonations(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.Donation{}).Preload("Donor.User")
	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}
	if campaign := c.Query("campaign"); campaign != "" {
		query = query.Where("campaign = ?", campaign)
	}

	response, err := Paginate[models.Donation](query.Order("created_at DESC"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve donations"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateDonationStatus godoc
// @Summary      Settle a donation
// @Description  Coordinator records the payment outcome.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                 true  "Donation ID"
// @Param        input body  DonationStatusInput true  "Payment outcome"
// @Success      200  {object}  models.Donation
// @Failure      404  {object}  ErrorResponse
// @Router       /donations/{id}/status [put]
func UpdateDonationStatus(c *gin.Context) {
	donationID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donation ID"})
		return
	}

	var input DonationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var donation models.Donation
	if err := database.DB.First(&donation, donationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	updates := map[string]interface{}{"payment_status": models.PaymentStatus(input.PaymentStatus)}
	if input.Notes != "" {
		updates["notes"] = sanitizeText(input.Notes)
	}
	if err := database.DB.Model(&donation).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation"})
		return
	}

	c.JSON(http.StatusOK, donation)
}
