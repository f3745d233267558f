package handler

import (
	"net/http"

	"github.com/chybby/tutorifull/internal/response"
	"github.com/chybby/tutorifull/internal/service"
	"github.com/gin-gonic/gin"
)

// StatsHandler serves aggregate service statistics.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetOverview godoc
// GET /api/stats
// Returns catalog sizes, pending alert counts per contact channel, and the
// classes with the most alerts waiting.
func (h *StatsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, overview)
}
