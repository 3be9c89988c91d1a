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

func TestMatingServiceCreateExpandsSheep(t *testing.T) {
	srv := apitest.New(t)
	ram := srv.AddSheep(models.Sheep{TagID: "R1", Name: "Bram", Sex: models.SexMale})
	ewe := srv.AddSheep(models.Sheep{TagID: "E1", Sex: models.SexFemale})
	client, _ := loggedInClient(t, srv)
	svc := NewMatingService(client, nil)
	ctx := context.Background()

	pair, err := svc.Create(ctx, models.MatingPairRequest{
		RamID:     ram.ID,
		EweID:     ewe.ID,
		StartDate: models.NewDate(2024, time.October, 1),
		Status:    models.MatingActive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bram", pair.RamName())
	assert.Equal(t, "E1", pair.EweName())
	assert.Nil(t, pair.EndDate)

	pairs, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	end := models.NewDate(2024, time.November, 1)
	updated, err := svc.Update(ctx, pair.ID, models.MatingPairRequest{
		RamID: ram.ID, EweID: ewe.ID, StartDate: pair.StartDate, EndDate: &end, Status: models.MatingCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.MatingCompleted, updated.Status)
	assert.Equal(t, "2024-11-01", models.DateString(updated.EndDate))
}

func TestMatingServiceDelete(t *testing.T) {
	srv := apitest.New(t)
	pair := srv.AddMatingPair(models.MatingPair{RamID: 1, EweID: 2, Status: models.MatingActive})
	client, _ := loggedInClient(t, srv)
	svc := NewMatingService(client, nil)
	ctx := context.Background()

	srv.Fail(http.MethodDelete, "/mating-pairs/:id", http.StatusInternalServerError)
	err := svc.Delete(ctx, pair.ID)
	require.Error(t, err)
	assert.Len(t, srv.MatingPairs(), 1)

	srv.Reset()
	require.NoError(t, svc.Delete(ctx, pair.ID))
	assert.Empty(t, srv.MatingPairs())

	_, err = svc.Get(ctx, pair.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
