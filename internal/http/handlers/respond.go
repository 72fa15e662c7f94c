package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/mindpace/mindpace-backend/internal/http/response"
	"github.com/mindpace/mindpace-backend/internal/platform/apierr"
)

// respondServiceError maps a service error onto the HTTP envelope using its
// embedded status and code.
func respondServiceError(c *gin.Context, err error) {
	response.RespondError(c, apierr.StatusOf(err), apierr.CodeOf(err), err)
}
