package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type feedbackEventRequest struct {
	UserID    string                 `json:"user_id"`
	EventType string                 `json:"event_type"`
	Context   domain.FeedbackContext `json:"context"`
}

// POST /api/feedback/events
func (h *FeedbackHandler) RecordEvent(c *gin.Context) {
	var req feedbackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	payload, err := h.feedback.Generate(req.UserID, domain.FeedbackEventType(req.EventType), req.Context)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"feedback": payload})
}

// GET /api/feedback/progress
func (h *FeedbackHandler) Progress(c *gin.Context) {
	anim, err := h.feedback.ProgressAnimation(c.Query("user_id"), c.DefaultQuery("target", "daily"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": anim})
}
