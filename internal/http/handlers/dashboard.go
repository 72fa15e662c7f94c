package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/services"
)

type DashboardHandler struct {
	dashboard services.DashboardService
}

func NewDashboardHandler(dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GET /api/dashboard
func (h *DashboardHandler) Report(c *gin.Context) {
	report, err := h.dashboard.QualityReport(c.Request.Context(), c.Query("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"report": report})
}
