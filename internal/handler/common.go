package handler

import (
	"strconv"

	"cosaportal/backend/internal/auth"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// UserSummary is the compact user representation embedded in other payloads.
type UserSummary struct {
	ID    uint   `json:"id" example:"1"`
	Name  string `json:"name" example:"Jane Doe"`
	Email string `json:"email" example:"jane@example.com"`
}

func newUserSummary(user *models.User) *UserSummary {
	if user == nil || user.ID == 0 {
		return nil
	}
	return &UserSummary{
		ID:    user.ID,
		Name:  user.FullName(),
		Email: user.Email,
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(auth.ContextUserKey).(*models.User)
}

func currentAlumni(c *gin.Context) *models.AlumniProfile {
	return c.MustGet(auth.ContextAlumniKey).(*models.AlumniProfile)
}

func currentAdmin(c *gin.Context) *models.AdminProfile {
	return c.MustGet(auth.ContextAdminKey).(*models.AdminProfile)
}

func currentCoordinator(c *gin.Context) *models.CoordinatorProfile {
	return c.MustGet(auth.ContextCoordinatorKey).(*models.CoordinatorProfile)
}
