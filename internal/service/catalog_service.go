package service

import (
	"context"
	"errors"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
	"github.com/rs/zerolog"
)

// CatalogService handles course and class lookups.
type CatalogService struct {
	courseRepo repository.CourseRepository
	klassRepo  repository.KlassRepository
	maxResults int
	log        zerolog.Logger
}

// NewCatalogService creates a new CatalogService. maxResults bounds the size
// of search results.
func NewCatalogService(
	courseRepo repository.CourseRepository,
	klassRepo repository.KlassRepository,
	maxResults int,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		courseRepo: courseRepo,
		klassRepo:  klassRepo,
		maxResults: maxResults,
		log:        log.With().Str("component", "catalog_service").Logger(),
	}
}

// SearchCourses returns courses whose name or compound ID contains query,
// case-insensitively. An empty query lists the catalog; either way at most
// the configured maximum comes back.
func (s *CatalogService) SearchCourses(ctx context.Context, query string) ([]model.Course, error) {
	courses, err := s.courseRepo.Search(ctx, query, s.maxResults)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// GetCourse retrieves one course and its class list by department code and
// course number. Propagates repository.ErrCourseNotFound and
// repository.ErrCourseNotUnique unchanged.
func (s *CatalogService) GetCourse(ctx context.Context, deptID, courseID string) (*model.CourseWithClasses, error) {
	course, err := s.courseRepo.GetWithClasses(ctx, deptID, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotUnique) {
			s.log.Error().
				Str("dept_id", deptID).
				Str("course_id", courseID).
				Msg("catalog holds duplicate rows for one course code")
		}
		return nil, err
	}
	return course, nil
}

// GetClassesByIDs resolves class IDs to classes with their owning courses.
// Unknown IDs are dropped silently.
func (s *CatalogService) GetClassesByIDs(ctx context.Context, ids []int64) ([]model.KlassWithCourse, error) {
	return s.klassRepo.GetByIDs(ctx, ids)
}

// SelectionByIDs resolves class IDs and groups them by owning course, the
// shape the confirmation page renders.
func (s *CatalogService) SelectionByIDs(ctx context.Context, ids []int64) ([]model.CourseWithClasses, error) {
	klasses, err := s.klassRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return model.GroupByCourse(klasses), nil
}
