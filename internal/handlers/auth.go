package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/middleware"
	"goldconnect/api/internal/models"
)

type loginRequest struct {
	Name string `json:"name" binding:"required"`
}

type sessionResponse struct {
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	Country string `json:"country"`
	Flag    string `json:"flag"`
}

func toSessionResponse(s models.Session) sessionResponse {
	return sessionResponse{
		Name:    s.Name,
		IsAdmin: s.IsAdmin,
		Country: s.Country,
		Flag:    s.Flag,
	}
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessionService.Login(c.Request.Context(), req.Name, c.ClientIP())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  toSessionResponse(result.Session),
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.sessionService.Logout(c.Request.Context(), session.ID); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

// Me is the restore path: the client re-reads its identity at startup.
func (h HandlerSet) Me(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toSessionResponse(session)})
}
