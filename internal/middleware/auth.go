package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roomshare/internal/service"
	"roomshare/pkg/logger"
)

type AuthMiddleware struct {
	sessions service.SessionService
	log      logger.Logger
}

func NewAuthMiddleware(sessions service.SessionService, log logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
		log:      log,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		token := parts[1]
		session, err := m.sessions.Validate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("user_email", session.Email)
		// The dispatch endpoint re-validates the raw token itself.
		c.Set("bearer_token", token)
		c.Next()
	}
}
