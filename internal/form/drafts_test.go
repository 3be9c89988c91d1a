package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

func validationMessage(t *testing.T, draft interface{}) string {
	t.Helper()
	err := firstFailure(NewValidator(), draft)
	if err == nil {
		return ""
	}
	require.True(t, appErrors.IsValidation(err))
	return appErrors.FromError(err).Message
}

func TestSheepDraftValidation(t *testing.T) {
	draft := SheepDraft{TagID: "GRN-020", Breed: "Dorper", Sex: "female", DateOfBirth: "2023-02-11"}
	assert.Empty(t, validationMessage(t, draft))

	negative := draft
	negative.AcquisitionPrice = "-5"
	assert.Equal(t, "Price must be a non-negative number", validationMessage(t, negative))

	garbage := draft
	garbage.AcquisitionPrice = "twelve"
	assert.Equal(t, "Price must be a non-negative number", validationMessage(t, garbage))

	missingTag := draft
	missingTag.TagID = " "
	assert.Equal(t, "Tag ID is required", validationMessage(t, missingTag))

	noSex := draft
	noSex.Sex = ""
	assert.Equal(t, "Please select a sex", validationMessage(t, noSex))

	badStatus := draft
	badStatus.Status = "lost"
	assert.Equal(t, "Status must be one of: active, sold, deceased", validationMessage(t, badStatus))
}

func TestSheepDraftToRequest(t *testing.T) {
	draft := SheepDraft{TagID: " GRN-020 ", Breed: "Dorper", Sex: "female", DateOfBirth: "2023-02-11", AcquisitionPrice: "120.50"}
	req, err := draft.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, "GRN-020", req.TagID)
	assert.Equal(t, models.SheepActive, req.Status)
	assert.Equal(t, models.SectionGeneral, req.CurrentSection)
	assert.Nil(t, req.PurchaseDate)
	require.NotNil(t, req.AcquisitionPrice)
	assert.True(t, decimal.RequireFromString("120.5").Equal(*req.AcquisitionPrice))
}

func TestSheepEditDraftRecordsSale(t *testing.T) {
	sold := models.NewDate(2024, time.June, 2)
	price := decimal.RequireFromString("180")
	sheep := models.Sheep{
		ID:             3,
		TagID:          "GRN-003",
		Breed:          "Texel",
		Status:         models.SheepSold,
		CurrentSection: models.SectionMale,
		SaleDate:       &sold,
		SalePrice:      &price,
	}
	draft := SeedSheepEdit(sheep)
	assert.Equal(t, "2024-06-02", draft.SaleDate)
	assert.Equal(t, "180", draft.SalePrice)
	assert.Empty(t, validationMessage(t, draft))

	update, err := draft.ToUpdate()
	require.NoError(t, err)
	assert.Equal(t, models.SheepSold, *update.Status)
	assert.Equal(t, "Texel", *update.Breed)
	assert.Equal(t, "2024-06-02", models.DateString(update.SaleDate))
	require.NotNil(t, update.SalePrice)
	assert.True(t, price.Equal(*update.SalePrice))
	assert.Nil(t, update.DeathDate)
}

func TestSheepEditDraftValidation(t *testing.T) {
	draft := SheepEditDraft{Breed: "Texel", Status: "active", CurrentSection: "general"}
	assert.Empty(t, validationMessage(t, draft))

	badPrice := draft
	badPrice.SalePrice = "-1"
	assert.Equal(t, "Sale price must be a non-negative number", validationMessage(t, badPrice))

	badDate := draft
	badDate.DeathDate = "yesterday"
	assert.Equal(t, "Death date must be a date (YYYY-MM-DD)", validationMessage(t, badDate))

	noBreed := draft
	noBreed.Breed = ""
	assert.Equal(t, "Breed is required", validationMessage(t, noBreed))
}

func TestSheepEditFormRejectsFixedFields(t *testing.T) {
	f := New(SheepEditDraft{Breed: "Texel"}, Options{})
	for _, field := range []string{"tag_id", "sex", "date_of_birth", "origin_farm", "rfid_code"} {
		assert.ErrorIs(t, f.Set(field, "x"), ErrUnknownField, field)
	}
	assert.NoError(t, f.Set("sale_date", "2024-06-02"))
}

func TestHealthEventDraftRoundTrip(t *testing.T) {
	due := models.NewDate(2024, time.August, 1)
	event := models.HealthEvent{SheepID: "GRN-001", EventType: models.EventDeworming, EventDate: models.NewDate(2024, time.May, 1), Details: "Drench", NextDueDate: &due}
	draft := SeedFromHealthEvent(event)
	assert.Empty(t, validationMessage(t, draft))

	req, err := draft.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, "2024-08-01", models.DateString(req.NextDueDate))

	update, err := draft.ToUpdate()
	require.NoError(t, err)
	assert.Equal(t, models.EventDeworming, *update.EventType)

	draft.NextDueDate = "soon"
	assert.Equal(t, "Next due date must be a date (YYYY-MM-DD)", validationMessage(t, draft))
	draft.NextDueDate = ""
	draft.SheepID = ""
	assert.Equal(t, "Please select a sheep", validationMessage(t, draft))
}

func TestMatingPairDraftToRequest(t *testing.T) {
	draft := NewMatingPairDraft(models.NewDate(2024, time.October, 1))
	draft.RamID = "4"
	draft.EweID = "9"
	req, err := draft.ToRequest()
	require.NoError(t, err)
	assert.Equal(t, int64(4), req.RamID)
	assert.Equal(t, int64(9), req.EweID)
	assert.Equal(t, models.MatingActive, req.Status)
	assert.Nil(t, req.EndDate)

	seeded := SeedFromMatingPair(models.MatingPair{RamID: 4, EweID: 9, StartDate: req.StartDate, Status: models.MatingCompleted})
	assert.Equal(t, "4", seeded.RamID)
	assert.Equal(t, "2024-10-01", seeded.StartDate)
}

func TestMatingPairDraftSheepIDs(t *testing.T) {
	base := NewMatingPairDraft(models.NewDate(2024, time.October, 1))
	cases := []struct {
		ram, ewe string
		want     string
	}{
		{"4", "9", ""},
		{"1", "1", "Ram and ewe cannot be the same sheep"},
		{"1", "01", "Ram and ewe cannot be the same sheep"},
		{" 7", "7 ", "Ram and ewe cannot be the same sheep"},
		{"0", "9", "Please select a ram"},
		{"-3", "9", "Please select a ram"},
		{"1.5", "9", "Please select a ram"},
		{"", "9", "Please select a ram"},
		{"4", "0", "Please select a ewe"},
		{"4", "ewe", "Please select a ewe"},
	}
	for _, tc := range cases {
		draft := base
		draft.RamID = tc.ram
		draft.EweID = tc.ewe
		assert.Equal(t, tc.want, validationMessage(t, draft), "ram %q ewe %q", tc.ram, tc.ewe)
	}
}

func TestMatingFormRejectsSameSheepBeforeSubmit(t *testing.T) {
	for _, ewe := range []string{"01", "1"} {
		f := New(NewMatingPairDraft(models.NewDate(2024, time.October, 1)), Options{})
		require.NoError(t, f.Set("ram_id", "1"))
		require.NoError(t, f.Set("ewe_id", ewe))

		called := false
		err := f.Submit(context.Background(), func(ctx context.Context, d MatingPairDraft) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.True(t, appErrors.IsValidation(err))
		assert.Equal(t, "Ram and ewe cannot be the same sheep", appErrors.FromError(err).Message)
		assert.False(t, called)
	}
}

func TestPasswordDrafts(t *testing.T) {
	reset := PasswordResetDraft{Token: "abc", NewPassword: "longenough", ConfirmPassword: "different!"}
	assert.Equal(t, "Passwords do not match", validationMessage(t, reset))

	reset.ConfirmPassword = reset.NewPassword
	reset.Token = ""
	assert.Equal(t, "Invalid reset token", validationMessage(t, reset))

	short := PasswordResetDraft{Token: "abc", NewPassword: "short", ConfirmPassword: "short"}
	assert.Equal(t, "Password must be at least 8 characters", validationMessage(t, short))

	assert.Equal(t, "Please enter a valid email address", validationMessage(t, PasswordResetRequestDraft{Email: "not-an-email"}))
	assert.Equal(t, "Email is required", validationMessage(t, LoginDraft{}))
	assert.Equal(t, "Passwords do not match", validationMessage(t, RegisterDraft{Email: "a@b.co", Username: "a", Password: "longenough", ConfirmPassword: "nope"}))

	assert.Equal(t, "a@b.co", LoginDraft{Email: " a@b.co "}.ToRequest().Email)
	assert.Equal(t, "new_pass1", PasswordResetDraft{Token: " t ", NewPassword: "new_pass1"}.ToRequest().NewPassword)
}

type stockStub struct {
	rams, ewes []models.Sheep
	err        error
}

func (s stockStub) AvailableRams(ctx context.Context) ([]models.Sheep, error) {
	return s.rams, nil
}

func (s stockStub) AvailableEwes(ctx context.Context) ([]models.Sheep, error) {
	return s.ewes, s.err
}

func TestLoadMatingOptions(t *testing.T) {
	stock := stockStub{rams: []models.Sheep{{ID: 1}}, ewes: []models.Sheep{{ID: 2}, {ID: 3}}}
	opts, err := LoadMatingOptions(context.Background(), stock)
	require.NoError(t, err)
	assert.Len(t, opts.Rams, 1)
	assert.Len(t, opts.Ewes, 2)

	boom := errors.New("boom")
	stock.err = boom
	_, err = LoadMatingOptions(context.Background(), stock)
	assert.ErrorIs(t, err, boom)
}
