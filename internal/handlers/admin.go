package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/service"
)

// AdminActivity returns the most recent send/delete journal entries,
// newest first.
func (h HandlerSet) AdminActivity(c *gin.Context) {
	count := int64(50)
	if raw := c.Query("count"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 && v <= 500 {
			count = v
		}
	}

	if h.cache == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []gin.H{}})
		return
	}

	entries, err := h.cache.XRevRangeN(c.Request.Context(), service.ActivityStream, "+", "-", count).Result()
	if err != nil {
		h.log.Error().Err(err).Msg("read activity stream failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "activity_unavailable"})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, gin.H{
			"id":        entry.ID,
			"event":     entry.Values["event"],
			"actor":     entry.Values["actor"],
			"messageId": entry.Values["messageId"],
		})
	}

	c.JSON(http.StatusOK, gin.H{"entries": items})
}
