package service

import (
	"context"
	"sync"

	"github.com/chybby/tutorifull/internal/model"
	"github.com/chybby/tutorifull/internal/repository"
	"github.com/rs/zerolog"
)

// mostWantedLimit bounds the ranking on the stats overview.
const mostWantedLimit = 10

// StatsOverview is the aggregate picture of the service: catalog size,
// alerts waiting per channel, and the classes with the most demand.
type StatsOverview struct {
	Courses         int64                         `json:"courses"`
	Klasses         int64                         `json:"klasses"`
	TotalAlerts     int64                         `json:"total_alerts"`
	AlertsByChannel map[model.ContactType]int64   `json:"alerts_by_channel"`
	MostWanted      []repository.WantedClass      `json:"most_wanted"`
}

// StatsService assembles the stats overview.
type StatsService struct {
	statsRepo repository.StatsRepository
	log       zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(statsRepo repository.StatsRepository, log zerolog.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		log:       log.With().Str("component", "stats_service").Logger(),
	}
}

// Overview fires the three independent aggregate queries concurrently. The
// counts are required; the most-wanted ranking is best-effort and comes back
// empty if its query fails.
func (s *StatsService) Overview(ctx context.Context) (*StatsOverview, error) {
	var (
		courses, klasses int64
		byChannel        map[model.ContactType]int64
		wanted           []repository.WantedClass
		catalogErr       error
		alertsErr        error
		wantedErr        error
		wg               sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		courses, klasses, catalogErr = s.statsRepo.CatalogCounts(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byChannel, alertsErr = s.statsRepo.AlertCountsByChannel(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		wanted, wantedErr = s.statsRepo.MostWantedClasses(ctx, mostWantedLimit)
	}()

	wg.Wait()

	if catalogErr != nil {
		return nil, catalogErr
	}
	if alertsErr != nil {
		return nil, alertsErr
	}

	overview := &StatsOverview{
		Courses:         courses,
		Klasses:         klasses,
		AlertsByChannel: make(map[model.ContactType]int64),
		MostWanted:      []repository.WantedClass{},
	}
	if byChannel != nil {
		overview.AlertsByChannel = byChannel
	}
	for _, count := range overview.AlertsByChannel {
		overview.TotalAlerts += count
	}

	if wantedErr != nil {
		s.log.Warn().Err(wantedErr).Msg("most-wanted ranking unavailable")
	} else if wanted != nil {
		overview.MostWanted = wanted
	}

	return overview, nil
}
