package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/data/repos"
	"github.com/mindpace/mindpace-backend/internal/domain"
	"github.com/mindpace/mindpace-backend/internal/http/response"
)

// EventsHandler exposes the engagement log. With the log disabled it serves
// empty lists rather than erroring.
type EventsHandler struct {
	events repos.EngagementEventRepo
}

func NewEventsHandler(events repos.EngagementEventRepo) *EventsHandler {
	return &EventsHandler{events: events}
}

// GET /api/events
func (h *EventsHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_user_id", nil)
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
		return
	}
	if h.events == nil {
		response.RespondOK(c, gin.H{"events": []domain.EngagementEvent{}})
		return
	}
	events, err := h.events.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_events_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}
