package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/services"
)

type AttentionHandler struct {
	attention services.AttentionService
}

func NewAttentionHandler(attention services.AttentionService) *AttentionHandler {
	return &AttentionHandler{attention: attention}
}

type startSessionRequest struct {
	UserID            string  `json:"user_id"`
	ContentDifficulty float64 `json:"content_difficulty"`
}

// POST /api/attention/sessions
func (h *AttentionHandler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sess, err := h.attention.StartSession(req.UserID, req.ContentDifficulty)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"session": sess})
}

type recordSignalRequest struct {
	SignalType string  `json:"signal_type"`
	Value      float64 `json:"value"`
}

// POST /api/attention/sessions/:id/signals
func (h *AttentionHandler) RecordSignal(c *gin.Context) {
	var req recordSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.attention.RecordSignal(c.Param("id"), domain.AttentionSignal(req.SignalType), req.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"result": res})
}

// GET /api/attention/config
func (h *AttentionHandler) OptimalConfig(c *gin.Context) {
	cfg, err := h.attention.OptimalConfig(c.Query("user_id"), c.Query("content_type"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"config": cfg})
}
