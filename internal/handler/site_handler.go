package handler

import (
	"net/http"

	"github.com/chybby/tutorifull/internal/config"
	"github.com/chybby/tutorifull/internal/response"
	"github.com/gin-gonic/gin"
)

type SiteHandler struct {
	cfg *config.Config
}

func NewSiteHandler(cfg *config.Config) *SiteHandler {
	return &SiteHandler{cfg: cfg}
}

// GetStatus godoc
// GET /api/site
// Returns the homepage feature flags. The frontend renders a closed or
// under-maintenance banner when one is set.
func (h *SiteHandler) GetStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"disabled":     h.cfg.SiteDisabled,
		"unmaintained": h.cfg.SiteUnmaintained,
	})
}
