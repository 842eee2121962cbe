package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldconnect/api/internal/models"
	"goldconnect/api/internal/service"
)

type verifyRequest struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
}

func (h HandlerSet) CreateVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.verifyService.Create(c.Request.Context(), service.VerifyInput{
		Name:        req.Name,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"record": rec})
}

func (h HandlerSet) ListVerify(c *gin.Context) {
	records, err := h.verifyService.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list verify records failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list_verify_failed"})
		return
	}

	if records == nil {
		records = []models.VerifyRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h HandlerSet) DeleteVerify(c *gin.Context) {
	if err := h.verifyService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
