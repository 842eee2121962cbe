package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/middleware"
	"goldconnect/api/internal/models"
	"goldconnect/api/internal/service"
)

func (h HandlerSet) ListMessages(c *gin.Context) {
	messages, err := h.messages.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list messages failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_messages_failed"})
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// StreamMessages holds an SSE stream open and emits the full current
// ordered message set on every change. The subscription is cancelled
// exactly once when the client goes away.
func (h HandlerSet) StreamMessages(c *gin.Context) {
	ch, cancel, err := h.hub.Subscribe(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("subscribe failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "subscribe_failed"})
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case messages, ok := <-ch:
			if !ok {
				return false
			}
			if messages == nil {
				messages = []models.Message{}
			}
			c.SSEvent("messages", messages)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

type textMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h HandlerSet) SendTextMessage(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req textMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.messageService.SendText(c.Request.Context(), session.Name, session.Country, req.Content); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "sent"})
}

func (h HandlerSet) SendFileMessage(c *gin.Context) {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.Media.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read_file_failed"})
		return
	}

	kind, err := h.messageService.SendFile(c.Request.Context(), service.FileInput{
		Author:       session.Name,
		Country:      session.Country,
		Filename:     header.Filename,
		DeclaredMIME: header.Header.Get("Content-Type"),
		Data:         data,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("author", session.Name).Msg("file send failed")
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "sent", "kind": kind})
}

func (h HandlerSet) DeleteMessage(c *gin.Context) {
	session, _ := middleware.CurrentSession(c)

	id := c.Param("id")
	if err := h.messageService.Delete(c.Request.Context(), id, session.Name); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
