package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/apitest"
	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

// seedReminders stores one long-overdue health event and one pairing that
// starts in five days.
func seedReminders(srv *apitest.Server) {
	ram := srv.AddSheep(models.Sheep{TagID: "UK-RAM-1", Breed: "Texel", Sex: models.SexMale, DateOfBirth: models.NewDate(2021, time.April, 2)})
	ewe := srv.AddSheep(models.Sheep{TagID: "UK-EWE-7", Breed: "Suffolk", Sex: models.SexFemale, DateOfBirth: models.NewDate(2022, time.March, 11)})
	due := models.NewDate(2020, time.January, 1)
	srv.AddHealthEvent(models.HealthEvent{SheepID: "UK-EWE-7", EventType: models.EventDeworming, EventDate: models.NewDate(2019, time.October, 1), NextDueDate: &due})

	now := time.Now().UTC()
	start := models.NewDate(now.Year(), now.Month(), now.Day()+5)
	srv.AddMatingPair(models.MatingPair{RamID: ram.ID, EweID: ewe.ID, StartDate: start, Status: models.MatingActive})
}

func TestNotificationServiceFeeds(t *testing.T) {
	srv := apitest.New(t)
	seedReminders(srv)
	client, _ := loggedInClient(t, srv)
	svc := NewNotificationService(client, nil)
	ctx := context.Background()

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)
	assert.Equal(t, int64(2), all[1].ID)
	assert.Equal(t, models.NotifyHealthOverdue, all[0].Type)
	assert.Equal(t, models.PriorityHigh, all[0].Priority)
	assert.Contains(t, all[0].Message, "Sheep UK-EWE-7 is overdue for deworming")
	assert.Equal(t, models.NotifyMatingWindow, all[1].Type)
	assert.Equal(t, "Ewe UK-EWE-7 due for mating in 5 days", all[1].Message)

	mating, err := svc.List(ctx, models.NotificationsMating)
	require.NoError(t, err)
	require.Len(t, mating, 1)
	assert.Equal(t, int64(1), mating[0].ID)
	assert.Equal(t, 1, srv.Hits(http.MethodGet, "/notifications/mating"))

	weaning, err := svc.List(ctx, models.NotificationsWeaning)
	require.NoError(t, err)
	assert.Empty(t, weaning)
}

func TestNotificationServiceRejectsUnknownCategory(t *testing.T) {
	srv := apitest.New(t)
	client, _ := loggedInClient(t, srv)

	_, err := NewNotificationService(client, nil).List(context.Background(), "lambing")
	require.Error(t, err)
	assert.True(t, appErrors.IsValidation(err))
	assert.Zero(t, srv.Hits(http.MethodGet, "/notifications/lambing"))
}
