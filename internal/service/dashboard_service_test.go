package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/models"
)

type sheepListerStub struct {
	sheep []models.Sheep
	err   error
}

func (s sheepListerStub) All(ctx context.Context) ([]models.Sheep, error) {
	return s.sheep, s.err
}

type healthListerStub struct {
	events  []models.HealthEvent
	overdue []models.HealthEvent
}

func (s healthListerStub) All(ctx context.Context) ([]models.HealthEvent, error) {
	return s.events, nil
}

func (s healthListerStub) Overdue(ctx context.Context) ([]models.HealthEvent, error) {
	return s.overdue, nil
}

type matingListerStub struct {
	pairs []models.MatingPair
}

func (s matingListerStub) All(ctx context.Context) ([]models.MatingPair, error) {
	return s.pairs, nil
}

func TestDashboardServiceSummary(t *testing.T) {
	due := func(d models.Date) *models.Date { return &d }
	events := []models.HealthEvent{
		{ID: 1, EventDate: models.NewDate(2024, time.May, 1), NextDueDate: due(models.NewDate(2024, time.June, 20))},
		{ID: 2, EventDate: models.NewDate(2024, time.June, 1), NextDueDate: due(models.NewDate(2024, time.September, 1))},
		{ID: 3, EventDate: models.NewDate(2024, time.April, 1), NextDueDate: due(models.NewDate(2024, time.June, 1))},
		{ID: 4, EventDate: models.NewDate(2024, time.June, 10)},
	}
	svc := NewDashboardService(
		sheepListerStub{sheep: []models.Sheep{{Status: models.SheepActive}, {Status: models.SheepSold}, {Status: models.SheepActive}}},
		healthListerStub{events: events, overdue: events[2:3]},
		matingListerStub{pairs: []models.MatingPair{{Status: models.MatingActive}, {Status: models.MatingCancelled}}},
		DashboardServiceConfig{RecentLimit: 2},
		nil,
	)
	svc.now = func() time.Time { return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC) }

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalSheep)
	assert.Equal(t, 2, summary.ActiveSheep)
	assert.Equal(t, 1, summary.OverdueHealth)
	assert.Equal(t, 1, summary.ActiveMatingPairs)
	assert.Equal(t, 1, summary.UpcomingTasks)
	require.Len(t, summary.RecentHealthEvents, 2)
	assert.Equal(t, int64(4), summary.RecentHealthEvents[0].ID)
	assert.Equal(t, int64(2), summary.RecentHealthEvents[1].ID)
}

func TestDashboardServiceSummaryFailsOnAnyLoad(t *testing.T) {
	boom := errors.New("boom")
	svc := NewDashboardService(sheepListerStub{err: boom}, healthListerStub{}, matingListerStub{}, DashboardServiceConfig{}, nil)

	_, err := svc.Summary(context.Background())
	assert.ErrorIs(t, err, boom)
}
