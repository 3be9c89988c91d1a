package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/apitest"
	"github.com/noah-isme/flock-console/internal/models"
)

func TestHealthQuery(t *testing.T) {
	overdue := true
	start := models.NewDate(2024, time.January, 1)
	query := healthQuery(models.HealthEventFilter{
		SheepID:   "GRN-001",
		EventType: models.EventDeworming,
		StartDate: &start,
		Overdue:   &overdue,
	})
	assert.Equal(t, "GRN-001", query.Get("sheep_id"))
	assert.Equal(t, "deworming", query.Get("event_type"))
	assert.Equal(t, "2024-01-01", query.Get("start_date"))
	assert.Equal(t, "true", query.Get("overdue"))
	assert.Empty(t, query.Get("end_date"))
	assert.Empty(t, healthQuery(models.HealthEventFilter{}))
}

func TestHealthServiceListAndOverdue(t *testing.T) {
	srv := apitest.New(t)
	past := models.NewDate(2020, time.January, 1)
	srv.AddHealthEvent(models.HealthEvent{SheepID: "A", EventType: models.EventVaccination, EventDate: models.NewDate(2019, time.June, 1), NextDueDate: &past})
	srv.AddHealthEvent(models.HealthEvent{SheepID: "B", EventType: models.EventCheckup, EventDate: models.NewDate(2024, time.June, 1)})
	client, _ := loggedInClient(t, srv)
	svc := NewHealthService(client, nil)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	checkups, err := svc.List(ctx, models.HealthEventFilter{EventType: models.EventCheckup})
	require.NoError(t, err)
	require.Len(t, checkups, 1)
	assert.Equal(t, "B", checkups[0].SheepID)

	overdue, err := svc.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "A", overdue[0].SheepID)
}

func TestHealthServiceCRUD(t *testing.T) {
	srv := apitest.New(t)
	client, _ := loggedInClient(t, srv)
	svc := NewHealthService(client, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateHealthEventRequest{
		SheepID:   "GRN-001",
		EventDate: models.NewDate(2024, time.May, 10),
		EventType: models.EventTreatment,
		Details:   "Foot rot",
	})
	require.NoError(t, err)

	details := "Foot rot, second dose"
	updated, err := svc.Update(ctx, created.ID, models.UpdateHealthEventRequest{Details: &details})
	require.NoError(t, err)
	assert.Equal(t, details, updated.Details)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, details, got.Details)

	require.NoError(t, svc.Delete(ctx, created.ID))
	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
