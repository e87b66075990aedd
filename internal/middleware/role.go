package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hackhub/internal/pkg/response"
)

// RequireRole ensures the authenticated account carries the given role.
func RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("roles")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Roles not found in token")
			c.Abort()
			return
		}

		roles, _ := value.([]string)
		for _, r := range roles {
			if r == required {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// AdminOnly middleware requires the admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}

// JudgeOnly middleware requires the judge role
func JudgeOnly() gin.HandlerFunc {
	return RequireRole("judge")
}
