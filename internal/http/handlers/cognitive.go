package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/services"
)

type CognitiveHandler struct {
	cognitive services.CognitiveService
}

func NewCognitiveHandler(cognitive services.CognitiveService) *CognitiveHandler {
	return &CognitiveHandler{cognitive: cognitive}
}

type analyzeRequest struct {
	Content string `json:"content"`
}

// POST /api/cognitive/analyze
func (h *CognitiveHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	load, err := h.cognitive.AnalyzeLoad(req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"load": load})
}

// GET /api/cognitive/state
func (h *CognitiveHandler) State(c *gin.Context) {
	minutes, err := strconv.ParseFloat(c.DefaultQuery("session_minutes", "0"), 64)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_minutes", err)
		return
	}
	state, err := h.cognitive.UserState(c.Query("user_id"), minutes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"state": state})
}

type adjustRequest struct {
	UserID         string  `json:"user_id"`
	Content        string  `json:"content"`
	SessionMinutes float64 `json:"session_minutes"`
}

// POST /api/cognitive/adjust
func (h *CognitiveHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	state, err := h.cognitive.UserState(req.UserID, req.SessionMinutes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	adjusted, err := h.cognitive.AdjustContent(req.Content, state)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"adjusted": adjusted})
}

// GET /api/cognitive/pacing
func (h *CognitiveHandler) Pacing(c *gin.Context) {
	rec, err := h.cognitive.PacingRecommendation(c.Query("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"pacing": rec})
}
