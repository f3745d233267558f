package handler

import (
	"net/http"

	"github.com/chybby/tutorifull/internal/contact"
	"github.com/chybby/tutorifull/internal/response"
	"github.com/gin-gonic/gin"
)

// YoHandler handles Yo username validation.
type YoHandler struct {
	checker contact.NameChecker
}

// NewYoHandler creates a new YoHandler.
func NewYoHandler(checker contact.NameChecker) *YoHandler {
	return &YoHandler{checker: checker}
}

// ValidateYoName godoc
// GET /api/validateyoname?yoname=THEBOLD
// Reports whether the username exists. The signup form calls this as the
// user types; malformed names answer false without a remote lookup.
func (h *YoHandler) ValidateYoName(c *gin.Context) {
	exists, err := contact.CheckYoName(c.Request.Context(), h.checker, c.Query("yoname"))
	if err != nil {
		response.Fail(c, http.StatusBadGateway, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exists": exists})
}
