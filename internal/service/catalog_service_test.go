package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
)

func setupTestCatalogService(maxResults int) (*CatalogService, *mockCourseRepo, *mockKlassRepo) {
	courses, klasses := testCatalog()
	courseRepo := newMockCourseRepo(courses...)
	klassRepo := newMockKlassRepo(klasses...)
	svc := NewCatalogService(courseRepo, klassRepo, maxResults, zerolog.Nop())
	return svc, courseRepo, klassRepo
}

func TestCatalogService_SearchCourses_MatchesNameAndCode(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	byName, err := svc.SearchCourses(context.Background(), "programming")
	if err != nil {
		t.Fatalf("SearchCourses should succeed: %v", err)
	}
	if len(byName) != 1 || byName[0].CompoundID != "COMP1511" {
		t.Errorf("expected [COMP1511] for name match, got %+v", byName)
	}

	byCode, err := svc.SearchCourses(context.Background(), "math1")
	if err != nil {
		t.Fatalf("SearchCourses should succeed: %v", err)
	}
	if len(byCode) != 1 || byCode[0].CompoundID != "MATH1131" {
		t.Errorf("expected [MATH1131] for code match, got %+v", byCode)
	}
}

func TestCatalogService_SearchCourses_Bounded(t *testing.T) {
	svc, _, _ := setupTestCatalogService(1)

	// Empty query matches everything; the cap still applies.
	courses, err := svc.SearchCourses(context.Background(), "")
	if err != nil {
		t.Fatalf("SearchCourses should succeed: %v", err)
	}
	if len(courses) != 1 {
		t.Errorf("expected results capped at 1, got %d", len(courses))
	}
}

func TestCatalogService_SearchCourses_NoMatches(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	courses, err := svc.SearchCourses(context.Background(), "underwater basket weaving")
	if err != nil {
		t.Fatalf("SearchCourses should succeed: %v", err)
	}
	if courses == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(courses) != 0 {
		t.Errorf("expected no results, got %d", len(courses))
	}
}

func TestCatalogService_GetCourse_Success(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	course, err := svc.GetCourse(context.Background(), "COMP", "1511")
	if err != nil {
		t.Fatalf("GetCourse should succeed: %v", err)
	}
	if course.CompoundID != "COMP1511" {
		t.Errorf("expected COMP1511, got %s", course.CompoundID)
	}
	if len(course.Classes) != 2 {
		t.Errorf("expected 2 classes, got %d", len(course.Classes))
	}
}

func TestCatalogService_GetCourse_NotFound(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	_, err := svc.GetCourse(context.Background(), "COMP", "9999")
	if !errors.Is(err, repository.ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCatalogService_GetCourse_DuplicateRows(t *testing.T) {
	svc, courseRepo, _ := setupTestCatalogService(100)
	courseRepo.courses = append(courseRepo.courses, model.CourseWithClasses{
		Course: model.Course{CompoundID: "COMP1511", DeptID: "COMP", CourseID: "1511", Name: "Programming Fundamentals (dupe)"},
	})

	_, err := svc.GetCourse(context.Background(), "COMP", "1511")
	if !errors.Is(err, repository.ErrCourseNotUnique) {
		t.Errorf("expected ErrCourseNotUnique, got %v", err)
	}
}

func TestCatalogService_GetClassesByIDs_DropsUnknown(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	klasses, err := svc.GetClassesByIDs(context.Background(), []int64{102, 999})
	if err != nil {
		t.Fatalf("GetClassesByIDs should succeed: %v", err)
	}
	if len(klasses) != 1 || klasses[0].KlassID != 102 {
		t.Errorf("expected [102], got %+v", klasses)
	}
}

func TestCatalogService_SelectionByIDs_Groups(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	courses, err := svc.SelectionByIDs(context.Background(), []int64{201, 102, 101})
	if err != nil {
		t.Fatalf("SelectionByIDs should succeed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}
	if courses[0].CompoundID != "COMP1511" || courses[1].CompoundID != "MATH1131" {
		t.Errorf("expected ascending course order [COMP1511 MATH1131], got [%s %s]",
			courses[0].CompoundID, courses[1].CompoundID)
	}
	if len(courses[0].Classes) != 2 {
		t.Errorf("expected both COMP1511 classes grouped together, got %d", len(courses[0].Classes))
	}
}

func TestCatalogService_SelectionByIDs_Empty(t *testing.T) {
	svc, _, _ := setupTestCatalogService(100)

	courses, err := svc.SelectionByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("SelectionByIDs should succeed: %v", err)
	}
	if courses == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(courses) != 0 {
		t.Errorf("expected no courses, got %d", len(courses))
	}
}
