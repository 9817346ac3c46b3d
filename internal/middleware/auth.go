// Package middleware holds the gin middleware of the HTTP API.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/qna-forum/backend/internal/logger"
)

// UserIDKey is the gin context key of the authenticated user id.
const UserIDKey = "user_id"

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the caller's id under UserIDKey.
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		userID, err := a.Authenticate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(UserIDKey, userID)
		ctx := logger.Into(c.Request.Context(), logger.From(c.Request.Context()).With("user_id", userID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UserID returns the authenticated caller, or "" on public routes.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
