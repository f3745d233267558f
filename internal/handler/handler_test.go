package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/chybby/tutorifull/internal/config"
	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
	"github.com/chybby/tutorifull/internal/response"
	"github.com/chybby/tutorifull/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock repositories ──

type mockCourseRepo struct {
	courses []model.CourseWithClasses
	err     error
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
	for _, c := range m.courses {
		if c.DeptID == deptID && c.CourseID == courseID {
			out := c
			return &out, nil
		}
	}
	return nil, repository.ErrCourseNotFound
}

func (m *mockCourseRepo) Upsert(_ context.Context, _ *model.Course) error {
	return m.err
}

type mockKlassRepo struct {
	klasses map[int64]model.KlassWithCourse
	err     error
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
	sort.Slice(out, func(i, j int) bool { return out[i].KlassID < out[j].KlassID })
	return out, nil
}

func (m *mockKlassRepo) UpsertBatch(_ context.Context, _ []model.Klass) error {
	return m.err
}

type mockAlertRepo struct {
	alerts []model.Alert
	err    error
}

func (m *mockAlertRepo) CreateBatch(_ context.Context, alerts []model.Alert) error {
	if m.err != nil {
		return m.err
	}
	m.alerts = append(m.alerts, alerts...)
	return nil
}

type mockStatsRepo struct {
	courses   int64
	klasses   int64
	byChannel map[model.ContactType]int64
	wanted    []repository.WantedClass
	err       error
}

func (m *mockStatsRepo) CatalogCounts(_ context.Context) (int64, int64, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.courses, m.klasses, nil
}

func (m *mockStatsRepo) AlertCountsByChannel(_ context.Context) (map[model.ContactType]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byChannel, nil
}

func (m *mockStatsRepo) MostWantedClasses(_ context.Context, limit int) ([]repository.WantedClass, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.wanted) > limit {
		return m.wanted[:limit], nil
	}
	return m.wanted, nil
}

// ── Fake Yo checker ──

type fakeChecker struct {
	known map[string]bool
	err   error
}

func (c *fakeChecker) IsValidName(_ context.Context, name string) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.known[name], nil
}

// ── Test fixtures and wiring ──

type testEnv struct {
	router    *gin.Engine
	alertRepo *mockAlertRepo
	checker   *fakeChecker
	statsRepo *mockStatsRepo
}

// newTestEnv wires real services over mock repositories and mounts every
// route the public API serves. The catalog holds COMP1511 (classes 101, 102)
// and MATH1131 (class 201); the checker knows the Yo name STUDENT.
func newTestEnv() *testEnv {
	comp := model.Course{CompoundID: "COMP1511", DeptID: "COMP", CourseID: "1511", Name: "Programming Fundamentals"}
	math := model.Course{CompoundID: "MATH1131", DeptID: "MATH", CourseID: "1131", Name: "Mathematics 1A"}

	klass := func(id int64, course model.Course, typ string) model.KlassWithCourse {
		return model.KlassWithCourse{
			Klass: model.Klass{
				KlassID:    id,
				CompoundID: course.CompoundID,
				Type:       typ,
				Status:     model.KlassStatusFull,
				Enrolled:   50,
				Capacity:   50,
			},
			Course: course,
		}
	}

	courseRepo := &mockCourseRepo{courses: []model.CourseWithClasses{
		{Course: comp, Classes: []model.Klass{
			klass(101, comp, "LEC").Klass,
			klass(102, comp, "TUT").Klass,
		}},
		{Course: math, Classes: []model.Klass{
			klass(201, math, "LEC").Klass,
		}},
	}}
	klassRepo := &mockKlassRepo{klasses: map[int64]model.KlassWithCourse{
		101: klass(101, comp, "LEC"),
		102: klass(102, comp, "TUT"),
		201: klass(201, math, "LEC"),
	}}
	alertRepo := &mockAlertRepo{}
	checker := &fakeChecker{known: map[string]bool{"STUDENT": true}}
	statsRepo := &mockStatsRepo{
		courses: 2,
		klasses: 3,
		byChannel: map[model.ContactType]int64{
			model.ContactTypeEmail: 5,
			model.ContactTypeSMS:   2,
		},
		wanted: []repository.WantedClass{
			{KlassID: 101, CourseID: "COMP1511", CourseName: "Programming Fundamentals", Type: "LEC", AlertCount: 4},
		},
	}

	catalogService := service.NewCatalogService(courseRepo, klassRepo, 100, zerolog.Nop())
	alertService := service.NewAlertService(klassRepo, alertRepo, zerolog.Nop())
	statsService := service.NewStatsService(statsRepo, zerolog.Nop())

	cfg := &config.Config{SiteDisabled: false, SiteUnmaintained: true}

	courseHandler := NewCourseHandler(catalogService)
	alertHandler := NewAlertHandler(alertService, catalogService, checker)
	yoHandler := NewYoHandler(checker)
	siteHandler := NewSiteHandler(cfg)
	statsHandler := NewStatsHandler(statsService)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	api := r.Group("/api")
	{
		api.GET("/courses", courseHandler.SearchCourses)
		api.GET("/courses/:course_id", courseHandler.GetCourse)
		api.GET("/site", siteHandler.GetStatus)
		api.GET("/stats", statsHandler.GetOverview)
		api.GET("/validateyoname", yoHandler.ValidateYoName)
		api.POST("/alerts", alertHandler.SaveAlerts)
	}
	r.GET("/alert", alertHandler.ShowSelection)

	return &testEnv{router: r, alertRepo: alertRepo, checker: checker, statsRepo: statsRepo}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// courseView mirrors the course JSON the API serves.
type courseView struct {
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
	Classes  []struct {
		KlassID  int64  `json:"klass_id"`
		Type     string `json:"type"`
		Status   string `json:"status"`
		Enrolled int    `json:"enrolled"`
		Capacity int    `json:"capacity"`
	} `json:"classes"`
}
