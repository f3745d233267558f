package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/chybby/tutorifull/internal/contact"
	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/response"
	"github.com/chybby/tutorifull/internal/service"
	"github.com/chybby/tutorifull/internal/validator"
	"github.com/gin-gonic/gin"
)

// AlertHandler handles alert signup and the selection preview.
type AlertHandler struct {
	alertService   *service.AlertService
	catalogService *service.CatalogService
	checker        contact.NameChecker
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(
	alertService *service.AlertService,
	catalogService *service.CatalogService,
	checker contact.NameChecker,
) *AlertHandler {
	return &AlertHandler{
		alertService:   alertService,
		catalogService: catalogService,
		checker:        checker,
	}
}

// SaveAlerts godoc
// POST /api/alerts
// Registers one alert per selected class for a single contact method and
// returns the selection grouped by course for the confirmation page.
func (h *AlertHandler) SaveAlerts(c *gin.Context) {
	var req model.SaveAlertsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}

	sub, err := contact.FromRequest(&req)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrMissingContact)
		return
	}

	contactInfo, err := sub.Validate(c.Request.Context(), h.checker)
	if err != nil {
		switch {
		case errors.Is(err, contact.ErrInvalidEmail):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidEmail)
		case errors.Is(err, contact.ErrInvalidPhone):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPhone)
		case errors.Is(err, contact.ErrInvalidYoName):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidYoName)
		default:
			// Yo checker transport failure, not a bad username.
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	courses, err := h.alertService.Register(c.Request.Context(), contactInfo, req.ClassIDs)
	if err != nil {
		if errors.Is(err, service.ErrNoClassesSelected) {
			response.Fail(c, http.StatusBadRequest, response.ErrNoClassesSelected)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"contact":      contactInfo.Value,
		"contact_type": contactInfo.Type.Description(),
		"courses":      courses,
	})
}

// ShowSelection godoc
// GET /alert?classids=1,2,3
// Returns the selected classes grouped by course, the data behind the
// signup confirmation page. Tokens that are not well-formed numbers are
// dropped without error.
func (h *AlertHandler) ShowSelection(c *gin.Context) {
	ids := parseClassIDs(c.Query("classids"))

	courses, err := h.catalogService.SelectionByIDs(c.Request.Context(), ids)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// parseClassIDs splits a comma-separated ID list, keeping only the
// well-formed positive numeric tokens.
func parseClassIDs(raw string) []int64 {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
