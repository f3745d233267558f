package repository

import (
	"context"
	"fmt"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlertRepository persists alert registrations. Alerts are append-only: a
// separate notifier process consumes and retires them, so nothing here reads
// them back.
type AlertRepository interface {
	CreateBatch(ctx context.Context, alerts []model.Alert) error
}

type alertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository creates a pgx-backed AlertRepository.
func NewAlertRepository(pool *pgxpool.Pool) AlertRepository {
	return &alertRepository{pool: pool}
}

// CreateBatch inserts the alerts in one transaction: every row becomes
// visible together at commit, or none do. IDs and timestamps are written
// back into the slice.
func (r *alertRepository) CreateBatch(ctx context.Context, alerts []model.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	// Rollback is a no-op once Commit succeeds.
	defer tx.Rollback(ctx)

	for i := range alerts {
		a := &alerts[i]
		if err := tx.QueryRow(ctx,
			`INSERT INTO alerts (klass_id, contact_type, contact)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at`,
			a.KlassID, a.ContactType, a.Contact,
		).Scan(&a.ID, &a.CreatedAt); err != nil {
			return fmt.Errorf("insert alert: %w", err)
		}
	}

	return tx.Commit(ctx)
}
