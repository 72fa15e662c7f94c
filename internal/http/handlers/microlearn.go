package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/services"
)

type MicroLearnHandler struct {
	micro services.MicroLearnService
}

func NewMicroLearnHandler(micro services.MicroLearnService) *MicroLearnHandler {
	return &MicroLearnHandler{micro: micro}
}

type chunkRequest struct {
	Content               string `json:"content"`
	Topic                 string `json:"topic"`
	TargetDurationSeconds int    `json:"target_duration_seconds"`
}

// POST /api/micro/chunk
func (h *MicroLearnHandler) Chunk(c *gin.Context) {
	var req chunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	units, err := h.micro.ChunkContent(req.Content, req.Topic, req.TargetDurationSeconds)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"units": units})
}

type momentRequest struct {
	UserID           string `json:"user_id"`
	MomentType       string `json:"moment_type"`
	AvailableSeconds int    `json:"available_seconds"`
}

// POST /api/micro/moments
func (h *MicroLearnHandler) DetectMoment(c *gin.Context) {
	var req momentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	moment, err := h.micro.DetectMoment(req.UserID, domain.MomentType(req.MomentType), req.AvailableSeconds)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	// A window too short to use is not an error; the moment is simply absent.
	response.RespondOK(c, gin.H{"moment": moment, "detected": moment != nil})
}

// GET /api/micro/feed
func (h *MicroLearnHandler) Feed(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_count", err)
		return
	}
	units, err := h.micro.Feed(c.Query("user_id"), count)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"units": units})
}
