package repository

import (
	"context"
	"errors"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUnknownCourse means a class row named a course the catalog does not
// hold. The feed lists classes under their course, so this points at a
// malformed feed entry rather than a storage fault.
var ErrUnknownCourse = errors.New("class references unknown course")

// KlassRepository resolves class IDs against the catalog and carries the
// loader's bulk write path.
type KlassRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]model.KlassWithCourse, error)
	UpsertBatch(ctx context.Context, klasses []model.Klass) error
}

type klassRepository struct {
	pool *pgxpool.Pool
}

// NewKlassRepository creates a pgx-backed KlassRepository.
func NewKlassRepository(pool *pgxpool.Pool) KlassRepository {
	return &klassRepository{pool: pool}
}

// GetByIDs returns the classes with the given IDs joined with their owning
// course, ordered by klass_id. IDs that match nothing are omitted without
// error; callers decide whether an empty result matters.
func (r *klassRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.KlassWithCourse, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT k.klass_id, k.compound_id, k.type, k.status, k.enrolled, k.capacity,
		        c.compound_id, c.dept_id, c.course_id, c.name
		 FROM klasses k
		 JOIN courses c ON c.compound_id = k.compound_id
		 WHERE k.klass_id = ANY($1)
		 ORDER BY k.klass_id ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var klasses []model.KlassWithCourse
	for rows.Next() {
		var kc model.KlassWithCourse
		if err := rows.Scan(
			&kc.KlassID, &kc.Klass.CompoundID, &kc.Type, &kc.Status, &kc.Enrolled, &kc.Capacity,
			&kc.Course.CompoundID, &kc.Course.DeptID, &kc.Course.CourseID, &kc.Course.Name,
		); err != nil {
			return nil, err
		}
		klasses = append(klasses, kc)
	}
	return klasses, rows.Err()
}

// UpsertBatch writes a page of catalog classes in one round trip. Existing
// rows get their type, status and enrolment numbers refreshed, so re-running
// the loader is safe.
func (r *klassRepository) UpsertBatch(ctx context.Context, klasses []model.Klass) error {
	if len(klasses) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, k := range klasses {
		batch.Queue(
			`INSERT INTO klasses (klass_id, compound_id, type, status, enrolled, capacity)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (klass_id) DO UPDATE SET
			   compound_id = EXCLUDED.compound_id,
			   type = EXCLUDED.type,
			   status = EXCLUDED.status,
			   enrolled = EXCLUDED.enrolled,
			   capacity = EXCLUDED.capacity`,
			k.KlassID, k.CompoundID, k.Type, k.Status, k.Enrolled, k.Capacity)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownCourse
		}
		return err
	}
	return nil
}
