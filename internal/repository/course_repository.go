package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	// ErrCourseNotUnique means the catalog holds several rows for one
	// course code. That is a data problem and is never silently resolved.
	ErrCourseNotUnique = errors.New("course code matches multiple courses")
)

// CourseRepository provides read access to the course catalog plus the
// write path the catalog loader uses.
type CourseRepository interface {
	Search(ctx context.Context, query string, limit int) ([]model.Course, error)
	GetWithClasses(ctx context.Context, deptID, courseID string) (*model.CourseWithClasses, error)
	Upsert(ctx context.Context, c *model.Course) error
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a pgx-backed CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

// Search matches query case-insensitively as a substring of the course name
// or compound identifier. An empty query matches every course; limit bounds
// the result either way.
func (r *courseRepository) Search(ctx context.Context, query string, limit int) ([]model.Course, error) {
	pattern := "%" + query + "%"
	rows, err := r.pool.Query(ctx,
		`SELECT compound_id, dept_id, course_id, name FROM courses
		 WHERE name ILIKE $1 OR compound_id ILIKE $1
		 ORDER BY compound_id ASC
		 LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.CompoundID, &c.DeptID, &c.CourseID, &c.Name); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetWithClasses retrieves the course with the given department code and
// course number, together with all its classes ordered by klass_id. Returns
// ErrCourseNotFound on zero matches and ErrCourseNotUnique on several.
func (r *courseRepository) GetWithClasses(ctx context.Context, deptID, courseID string) (*model.CourseWithClasses, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT compound_id, dept_id, course_id, name FROM courses
		 WHERE dept_id = $1 AND course_id = $2`, deptID, courseID)
	if err != nil {
		return nil, err
	}

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.CompoundID, &c.DeptID, &c.CourseID, &c.Name); err != nil {
			rows.Close()
			return nil, err
		}
		courses = append(courses, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch {
	case len(courses) == 0:
		return nil, ErrCourseNotFound
	case len(courses) > 1:
		return nil, fmt.Errorf("%w: %s%s has %d rows", ErrCourseNotUnique, deptID, courseID, len(courses))
	}

	out := &model.CourseWithClasses{Course: courses[0], Classes: []model.Klass{}}

	krows, err := r.pool.Query(ctx,
		`SELECT klass_id, compound_id, type, status, enrolled, capacity FROM klasses
		 WHERE compound_id = $1
		 ORDER BY klass_id ASC`, out.CompoundID)
	if err != nil {
		return nil, err
	}
	defer krows.Close()

	for krows.Next() {
		var k model.Klass
		if err := krows.Scan(&k.KlassID, &k.CompoundID, &k.Type, &k.Status, &k.Enrolled, &k.Capacity); err != nil {
			return nil, err
		}
		out.Classes = append(out.Classes, k)
	}
	return out, krows.Err()
}

// Upsert inserts a course or refreshes its name. The catalog loader calls
// this once per scraped course, so existing compound IDs are expected.
func (r *courseRepository) Upsert(ctx context.Context, c *model.Course) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO courses (compound_id, dept_id, course_id, name)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (compound_id) DO UPDATE SET name = EXCLUDED.name`,
		c.CompoundID, c.DeptID, c.CourseID, c.Name)
	return err
}
