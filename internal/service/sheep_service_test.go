package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/apitest"
	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

func TestSheepServiceCRUD(t *testing.T) {
	srv := apitest.New(t)
	client, _ := loggedInClient(t, srv)
	svc := NewSheepService(client, nil)
	ctx := context.Background()

	price := decimal.RequireFromString("249.99")
	created, err := svc.Create(ctx, models.CreateSheepRequest{
		TagID:            "GRN-014",
		Breed:            "Dorper",
		Sex:              models.SexFemale,
		DateOfBirth:      models.NewDate(2022, time.April, 2),
		AcquisitionPrice: &price,
		Status:           models.SheepActive,
		CurrentSection:   models.SectionGeneral,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, price.Equal(*created.AcquisitionPrice))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2022-04-02", got.DateOfBirth.String())

	breed := "Dorper Cross"
	updated, err := svc.Update(ctx, created.ID, models.UpdateSheepRequest{Breed: &breed})
	require.NoError(t, err)
	assert.Equal(t, breed, updated.Breed)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestSheepServiceCreateDuplicateTag(t *testing.T) {
	srv := apitest.New(t)
	srv.AddSheep(models.Sheep{TagID: "GRN-001", Sex: models.SexMale})
	client, _ := loggedInClient(t, srv)

	_, err := NewSheepService(client, nil).Create(context.Background(), models.CreateSheepRequest{TagID: "GRN-001", Sex: models.SexMale})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Equal(t, "Tag ID already registered", appErrors.FromError(err).Message)
}

func TestSheepServiceListFilterAndAvailable(t *testing.T) {
	srv := apitest.New(t)
	srv.AddSheep(models.Sheep{TagID: "R1", Sex: models.SexMale})
	srv.AddSheep(models.Sheep{TagID: "R2", Sex: models.SexMale, Status: models.SheepSold})
	srv.AddSheep(models.Sheep{TagID: "E1", Sex: models.SexFemale})
	client, _ := loggedInClient(t, srv)
	svc := NewSheepService(client, nil)
	ctx := context.Background()

	sold, err := svc.List(ctx, models.SheepFilter{Status: models.SheepSold})
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, "R2", sold[0].TagID)

	rams, err := svc.AvailableRams(ctx)
	require.NoError(t, err)
	require.Len(t, rams, 1)
	assert.Equal(t, "R1", rams[0].TagID)

	ewes, err := svc.AvailableEwes(ctx)
	require.NoError(t, err)
	require.Len(t, ewes, 1)
	assert.Equal(t, "E1", ewes[0].TagID)
}

func TestSheepServiceListFailure(t *testing.T) {
	srv := apitest.New(t)
	client, _ := loggedInClient(t, srv)
	srv.Fail(http.MethodGet, "/sheep", http.StatusInternalServerError)

	_, err := NewSheepService(client, nil).All(context.Background())
	require.Error(t, err)
	assert.True(t, appErrors.IsRemote(err))
}
