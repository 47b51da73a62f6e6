package auth

import (
	"net/http"

	"cosaportal/backend/internal/database"
	"cosaportal/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Role middlewares must be used AFTER the standard AuthMiddleware. Each one
// checks the role discriminant and resolves the matching auxiliary profile.
// A wrong role and a missing profile are distinct failures: the latter means
// the account is broken and the client must re-authenticate or re-register.

// AdminMiddleware creates a gin middleware to check for admin role.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c)
		if !ok {
			return
		}
		if user.EffectiveRole() != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		var profile models.AdminProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin profile missing, please re-register"})
			return
		}

		c.Set(ContextAdminKey, &profile)
		c.Next()
	}
}

// CoordinatorMiddleware checks for the coordinator role.
func CoordinatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c)
		if !ok {
			return
		}
		if user.EffectiveRole() != models.RoleCoordinator {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Coordinator access required"})
			return
		}

		var profile models.CoordinatorProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Coordinator profile missing, please re-register"})
			return
		}

		c.Set(ContextCoordinatorKey, &profile)
		c.Next()
	}
}

// AlumniMiddleware checks for the alumni role.
func AlumniMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c)
		if !ok {
			return
		}
		if user.EffectiveRole() != models.RoleAlumni {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Alumni access required"})
			return
		}

		var profile models.AlumniProfile
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Alumni profile missing, please re-register"})
			return
		}

		c.Set(ContextAlumniKey, &profile)
		c.Next()
	}
}

// UserMiddleware resolves the user for endpoints open to any role (social
// graph, notifications).
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadUser(c); !ok {
			return
		}
		c.Next()
	}
}

// ProfileMiddleware resolves the user and whichever auxiliary profile matches
// their role. Used by endpoints any role may call but that act through the
// caller's profile (messaging).
func ProfileMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadUser(c)
		if !ok {
			return
		}

		switch user.EffectiveRole() {
		case models.RoleAdmin:
			var profile models.AdminProfile
			if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin profile missing, please re-register"})
				return
			}
			c.Set(ContextAdminKey, &profile)
		case models.RoleCoordinator:
			var profile models.CoordinatorProfile
			if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Coordinator profile missing, please re-register"})
				return
			}
			c.Set(ContextCoordinatorKey, &profile)
		default:
			var profile models.AlumniProfile
			if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Alumni profile missing, please re-register"})
				return
			}
			c.Set(ContextAlumniKey, &profile)
		}
		c.Next()
	}
}
