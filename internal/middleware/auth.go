package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hackhub/internal/pkg/response"
	"hackhub/internal/pkg/tokens"
)

// RequireAuth validates the Bearer access token and stores the caller's
// identity on the context under "account_id" (int64) and "roles" ([]string).
func RequireAuth(issuer *tokens.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be a Bearer token")
			c.Abort()
			return
		}

		claims, err := issuer.ParseAccessToken(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Access token is invalid or expired")
			c.Abort()
			return
		}

		c.Set("account_id", claims.AccountID)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}
