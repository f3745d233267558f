package repository

import (
	"context"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WantedClass is one row of the most-wanted ranking: a class still in the
// catalog, its owning course code, and how many alerts are waiting on it.
type WantedClass struct {
	KlassID    int64  `json:"klass_id"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	Type       string `json:"type"`
	AlertCount int64  `json:"alert_count"`
}

// StatsRepository provides the aggregate counts behind the stats endpoint.
type StatsRepository interface {
	CatalogCounts(ctx context.Context) (courses, klasses int64, err error)
	AlertCountsByChannel(ctx context.Context) (map[model.ContactType]int64, error)
	MostWantedClasses(ctx context.Context, limit int) ([]WantedClass, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a pgx-backed StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

// CatalogCounts returns the number of courses and classes in the catalog.
func (r *statsRepository) CatalogCounts(ctx context.Context) (courses, klasses int64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM klasses)`,
	).Scan(&courses, &klasses)
	return
}

// AlertCountsByChannel returns the number of registered alerts per contact
// channel. Channels with no alerts are absent from the map.
func (r *statsRepository) AlertCountsByChannel(ctx context.Context) (map[model.ContactType]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT contact_type, COUNT(*) FROM alerts GROUP BY contact_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.ContactType]int64)
	for rows.Next() {
		var channel model.ContactType
		var count int64
		if err := rows.Scan(&channel, &count); err != nil {
			return nil, err
		}
		counts[channel] = count
	}
	return counts, rows.Err()
}

// MostWantedClasses returns the classes with the most alerts waiting,
// busiest first. The join drops alerts whose class has left the catalog.
func (r *statsRepository) MostWantedClasses(ctx context.Context, limit int) ([]WantedClass, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT k.klass_id, c.compound_id, c.name, k.type, COUNT(a.id) AS alert_count
		 FROM alerts a
		 JOIN klasses k ON k.klass_id = a.klass_id
		 JOIN courses c ON c.compound_id = k.compound_id
		 GROUP BY k.klass_id, c.compound_id, c.name, k.type
		 ORDER BY alert_count DESC, k.klass_id ASC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wanted []WantedClass
	for rows.Next() {
		var w WantedClass
		if err := rows.Scan(&w.KlassID, &w.CourseID, &w.CourseName, &w.Type, &w.AlertCount); err != nil {
			return nil, err
		}
		wanted = append(wanted, w)
	}
	if wanted == nil {
		wanted = []WantedClass{}
	}
	return wanted, rows.Err()
}
