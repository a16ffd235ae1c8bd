package middleware

import (
	"net/http"
	"strings"

	"glowbook/config"

	"github.com/gin-gonic/gin"
)

// StaffAuthMiddleware guards the staff-side booking decisions with the shared
// staff API key. Customer tokens never pass here, so a user cannot approve
// their own reschedule request.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		key := config.AppConfig.StaffAPIKey
		if key == "" || tokenString != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized staff access"})
			return
		}

		c.Set("isStaff", true)
		c.Next()
	}
}
