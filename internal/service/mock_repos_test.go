package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
)

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses []model.CourseWithClasses
	err     error // when set, every call fails with it
}

func newMockCourseRepo(courses ...model.CourseWithClasses) *mockCourseRepo {
	return &mockCourseRepo{courses: courses}
}

func (m *mockCourseRepo) Search(_ context.Context, query string, limit int) ([]model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	q := strings.ToLower(query)
	var out []model.Course
	for _, c := range m.courses {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.CompoundID), q) {
			out = append(out, c.Course)
		}
	}
	return out, nil
}

func (m *mockCourseRepo) GetWithClasses(_ context.Context, deptID, courseID string) (*model.CourseWithClasses, error) {
	if m.err != nil {
		return nil, m.err
	}
	var matches []model.CourseWithClasses
	for _, c := range m.courses {
		if c.DeptID == deptID && c.CourseID == courseID {
			matches = append(matches, c)
		}
	}
	switch {
	case len(matches) == 0:
		return nil, repository.ErrCourseNotFound
	case len(matches) > 1:
		return nil, repository.ErrCourseNotUnique
	}
	out := matches[0]
	return &out, nil
}

func (m *mockCourseRepo) Upsert(_ context.Context, c *model.Course) error {
	if m.err != nil {
		return m.err
	}
	for i := range m.courses {
		if m.courses[i].CompoundID == c.CompoundID {
			m.courses[i].Name = c.Name
			return nil
		}
	}
	m.courses = append(m.courses, model.CourseWithClasses{Course: *c})
	return nil
}

// ── Mock KlassRepository ──

type mockKlassRepo struct {
	klasses map[int64]model.KlassWithCourse
	err     error
}

func newMockKlassRepo(klasses ...model.KlassWithCourse) *mockKlassRepo {
	m := &mockKlassRepo{klasses: make(map[int64]model.KlassWithCourse)}
	for _, k := range klasses {
		m.klasses[k.KlassID] = k
	}
	return m
}

func (m *mockKlassRepo) GetByIDs(_ context.Context, ids []int64) ([]model.KlassWithCourse, error) {
	if m.err != nil {
		return nil, m.err
	}
	seen := make(map[int64]bool)
	var out []model.KlassWithCourse
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if k, ok := m.klasses[id]; ok {
			out = append(out, k)
		}
	}
	// The real repository orders by klass_id.
	sort.Slice(out, func(i, j int) bool { return out[i].KlassID < out[j].KlassID })
	return out, nil
}

func (m *mockKlassRepo) UpsertBatch(_ context.Context, klasses []model.Klass) error {
	if m.err != nil {
		return m.err
	}
	for _, k := range klasses {
		existing := m.klasses[k.KlassID]
		existing.Klass = k
		m.klasses[k.KlassID] = existing
	}
	return nil
}

// ── Mock AlertRepository ──

type mockAlertRepo struct {
	alerts []model.Alert
	err    error
}

func newMockAlertRepo() *mockAlertRepo {
	return &mockAlertRepo{}
}

func (m *mockAlertRepo) CreateBatch(_ context.Context, alerts []model.Alert) error {
	if m.err != nil {
		// A failed batch stores nothing, like a rolled-back transaction.
		return m.err
	}
	for i := range alerts {
		alerts[i].ID = int64(len(m.alerts) + 1)
		alerts[i].CreatedAt = time.Now()
		m.alerts = append(m.alerts, alerts[i])
	}
	return nil
}

// ── Mock StatsRepository ──

type mockStatsRepo struct {
	courses   int64
	klasses   int64
	byChannel map[model.ContactType]int64
	wanted    []repository.WantedClass

	countsErr error
	alertsErr error
	wantedErr error
}

func (m *mockStatsRepo) CatalogCounts(_ context.Context) (int64, int64, error) {
	if m.countsErr != nil {
		return 0, 0, m.countsErr
	}
	return m.courses, m.klasses, nil
}

func (m *mockStatsRepo) AlertCountsByChannel(_ context.Context) (map[model.ContactType]int64, error) {
	if m.alertsErr != nil {
		return nil, m.alertsErr
	}
	return m.byChannel, nil
}

func (m *mockStatsRepo) MostWantedClasses(_ context.Context, limit int) ([]repository.WantedClass, error) {
	if m.wantedErr != nil {
		return nil, m.wantedErr
	}
	if len(m.wanted) > limit {
		return m.wanted[:limit], nil
	}
	return m.wanted, nil
}

// ── Shared fixtures ──

func testKlass(id int64, compoundID, typ string) model.Klass {
	return model.Klass{
		KlassID:    id,
		CompoundID: compoundID,
		Type:       typ,
		Status:     model.KlassStatusFull,
		Enrolled:   50,
		Capacity:   50,
	}
}

// testCatalog returns two courses: COMP1511 with classes 101 and 102, and
// MATH1131 with class 201.
func testCatalog() ([]model.CourseWithClasses, []model.KlassWithCourse) {
	comp := model.Course{CompoundID: "COMP1511", DeptID: "COMP", CourseID: "1511", Name: "Programming Fundamentals"}
	math := model.Course{CompoundID: "MATH1131", DeptID: "MATH", CourseID: "1131", Name: "Mathematics 1A"}

	courses := []model.CourseWithClasses{
		{Course: comp, Classes: []model.Klass{
			testKlass(101, comp.CompoundID, "LEC"),
			testKlass(102, comp.CompoundID, "TUT"),
		}},
		{Course: math, Classes: []model.Klass{
			testKlass(201, math.CompoundID, "LEC"),
		}},
	}

	klasses := []model.KlassWithCourse{
		{Klass: testKlass(101, comp.CompoundID, "LEC"), Course: comp},
		{Klass: testKlass(102, comp.CompoundID, "TUT"), Course: comp},
		{Klass: testKlass(201, math.CompoundID, "LEC"), Course: math},
	}
	return courses, klasses
}
