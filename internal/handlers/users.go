package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/models"
)

// ListUsers returns presence records, most recently joined first.
// One-shot, not live.
func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_users_failed"})
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
