package handler

import (
	"errors"
	"net/http"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
	"github.com/chybby/tutorifull/internal/response"
	"github.com/chybby/tutorifull/internal/service"
	"github.com/gin-gonic/gin"
)

// CourseHandler handles course catalog endpoints.
type CourseHandler struct {
	catalogService *service.CatalogService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(catalogService *service.CatalogService) *CourseHandler {
	return &CourseHandler{catalogService: catalogService}
}

// SearchCourses godoc
// GET /api/courses?q=comp
// Returns courses whose name or code contains the query. An empty query
// lists the catalog; results are bounded either way.
func (h *CourseHandler) SearchCourses(c *gin.Context) {
	courses, err := h.catalogService.SearchCourses(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/courses/:course_id
// Returns one course with its full class list. The identifier is the
// compound form ("COMP1511"), case-insensitive.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	deptID, courseID, err := model.ParseCourseID(c.Param("course_id"))
	if err != nil {
		// A malformed code cannot name a course; report it as absent.
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	course, err := h.catalogService.GetCourse(c.Request.Context(), deptID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, course)
}
