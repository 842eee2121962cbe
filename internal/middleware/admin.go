package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/models"
)

// RequireAdmin gates the admin surface on the session's admin flag.
// The flag comes from a literal name match at login: a placeholder
// access check, not real authorization.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := CurrentSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !session.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentSession reads the identity placed by Auth.
func CurrentSession(c *gin.Context) (models.Session, bool) {
	val, exists := c.Get(sessionContextKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := val.(models.Session)
	return session, ok
}
