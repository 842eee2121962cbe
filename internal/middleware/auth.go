package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/config"
	"goldconnect/api/internal/security"
	"goldconnect/api/internal/service"
)

const sessionContextKey = "current_session"

// Auth restores the caller's identity from a Bearer token. A token
// whose session was logged out or expired reads as "no session".
func Auth(cfg *config.AppConfig, sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseSessionToken(tokenStr, cfg.Session.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		session, err := sessions.Restore(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session_not_found"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}
