package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
	"github.com/rs/zerolog"
)

// Domain Errors
var (
	// ErrNoClassesSelected means the submitted class IDs resolved to no
	// known classes. Distinct from a lookup miss: it is a problem with the
	// user's selection, not with a named resource.
	ErrNoClassesSelected = errors.New("no classes selected")
)

// AlertService handles alert registration.
type AlertService struct {
	klassRepo repository.KlassRepository
	alertRepo repository.AlertRepository
	log       zerolog.Logger
}

// NewAlertService creates a new AlertService.
func NewAlertService(
	klassRepo repository.KlassRepository,
	alertRepo repository.AlertRepository,
	log zerolog.Logger,
) *AlertService {
	return &AlertService{
		klassRepo: klassRepo,
		alertRepo: alertRepo,
		log:       log.With().Str("component", "alert_service").Logger(),
	}
}

// Register records one alert per resolvable class ID for the given contact
// and returns the selection grouped by course for the confirmation page,
// courses ascending by compound ID. IDs that match no class are dropped; if
// none survive, nothing is stored and ErrNoClassesSelected is returned. The
// batch insert is atomic: a failure partway leaves no rows behind.
func (s *AlertService) Register(ctx context.Context, contact model.Contact, klassIDs []int64) ([]model.CourseWithClasses, error) {
	klasses, err := s.klassRepo.GetByIDs(ctx, klassIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve classes: %w", err)
	}
	if len(klasses) == 0 {
		return nil, ErrNoClassesSelected
	}

	alerts := make([]model.Alert, 0, len(klasses))
	for _, k := range klasses {
		alerts = append(alerts, model.Alert{
			KlassID:     k.KlassID,
			ContactType: contact.Type,
			Contact:     contact.Value,
		})
	}

	if err := s.alertRepo.CreateBatch(ctx, alerts); err != nil {
		return nil, fmt.Errorf("create alerts: %w", err)
	}

	// Contact values are PII; log counts and channel only.
	s.log.Info().
		Str("contact_type", string(contact.Type)).
		Int("alerts", len(alerts)).
		Msg("alerts registered")

	return model.GroupByCourse(klasses), nil
}
