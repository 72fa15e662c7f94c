package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/services"
)

type MomentumHandler struct {
	momentum services.MomentumService
}

func NewMomentumHandler(momentum services.MomentumService) *MomentumHandler {
	return &MomentumHandler{momentum: momentum}
}

type activityRequest struct {
	UserID       string  `json:"user_id"`
	ActivityType string  `json:"activity_type"`
	Value        float64 `json:"value"`
}

// POST /api/momentum/activities
func (h *MomentumHandler) RecordActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := h.momentum.RecordActivity(req.UserID, domain.ActivityType(req.ActivityType), req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"momentum": rec})
}

// GET /api/momentum/status
func (h *MomentumHandler) Status(c *gin.Context) {
	rec, err := h.momentum.Status(c.Query("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"momentum": rec})
}

// GET /api/momentum/comeback
func (h *MomentumHandler) Comeback(c *gin.Context) {
	plan, err := h.momentum.ComebackPath(c.Query("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"plan": plan})
}

// GET /api/momentum/boost
func (h *MomentumHandler) Boost(c *gin.Context) {
	note, err := h.momentum.BoostNotification(c.Query("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notification": note})
}
