package auth

import (
	"net/http"
	"strings"
	"time"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"
	"cosaportal/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middlewares below.
const (
	ContextUserIDKey      = "userID"
	ContextUserKey        = "currentUser"
	ContextAlumniKey      = "alumniProfile"
	ContextAdminKey       = "adminProfile"
	ContextCoordinatorKey = "coordinatorProfile"
)

// AuthMiddleware verifies the bearer token and sets the user ID in the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		userID, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware inspects for a token and sets the userID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if userID, err := jwt.ParseToken(parts[1]); err == nil {
					c.Set(ContextUserIDKey, userID)
				}
			}
		}
		c.Next()
	}
}

// loadUser fetches the authenticated user and enforces suspension. Timed
// suspensions that have run out are lifted here (lazy expiry) and the cleared
// fields persisted.
func loadUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
		return nil, false
	}

	wasSuspended := user.IsSuspended
	if !user.CanLogin(time.Now()) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return nil, false
	}
	if wasSuspended && !user.IsSuspended {
		database.DB.Model(&user).Select(
			"is_suspended", "suspension_reason", "suspended_at", "suspension_expires_at",
		).Updates(map[string]interface{}{
			"is_suspended":          false,
			"suspension_reason":     "",
			"suspended_at":          nil,
			"suspension_expires_at": nil,
		})
	}

	c.Set(ContextUserKey, &user)
	return &user, true
}
