package service

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/flock-console/internal/models"
)

type sheepLister interface {
	All(ctx context.Context) ([]models.Sheep, error)
}

type healthLister interface {
	All(ctx context.Context) ([]models.HealthEvent, error)
	Overdue(ctx context.Context) ([]models.HealthEvent, error)
}

type matingLister interface {
	All(ctx context.Context) ([]models.MatingPair, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	UpcomingWindow time.Duration
	RecentLimit    int
}

// DashboardService composes the landing screen counters.
type DashboardService struct {
	sheep  sheepLister
	health healthLister
	mating matingLister
	logger *zap.Logger
	now    func() time.Time
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(sheep sheepLister, health healthLister, mating matingLister, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.UpcomingWindow <= 0 {
		cfg.UpcomingWindow = 30 * 24 * time.Hour
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	return &DashboardService{sheep: sheep, health: health, mating: mating, logger: logger, now: time.Now, cfg: cfg}
}

// Summary loads the three collections concurrently and aggregates them.
// Any failed load fails the whole summary.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	var (
		sheep   []models.Sheep
		events  []models.HealthEvent
		overdue []models.HealthEvent
		pairs   []models.MatingPair
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sheep, err = s.sheep.All(gctx)
		return err
	})
	g.Go(func() (err error) {
		events, err = s.health.All(gctx)
		return err
	})
	g.Go(func() (err error) {
		overdue, err = s.health.Overdue(gctx)
		return err
	})
	g.Go(func() (err error) {
		pairs, err = s.mating.All(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("dashboard load failed", zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	today := models.NewDate(now.Year(), now.Month(), now.Day())
	horizon := today.Add(s.cfg.UpcomingWindow)

	summary := &models.DashboardSummary{TotalSheep: len(sheep), OverdueHealth: len(overdue)}
	for _, animal := range sheep {
		if animal.Status == models.SheepActive {
			summary.ActiveSheep++
		}
	}
	for _, pair := range pairs {
		if pair.Status == models.MatingActive {
			summary.ActiveMatingPairs++
		}
	}
	for _, event := range events {
		if event.NextDueDate == nil {
			continue
		}
		due := event.NextDueDate.Time
		if !due.Before(today.Time) && !due.After(horizon) {
			summary.UpcomingTasks++
		}
	}

	recent := slices.Clone(events)
	slices.SortStableFunc(recent, func(a, b models.HealthEvent) int {
		return b.EventDate.Compare(a.EventDate)
	})
	if len(recent) > s.cfg.RecentLimit {
		recent = recent[:s.cfg.RecentLimit]
	}
	summary.RecentHealthEvents = recent
	return summary, nil
}
