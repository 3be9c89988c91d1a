package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := models.TokenClaims{
		Email: "shepherd@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestSessionLifecycle(t *testing.T) {
	s := New()
	_, err := s.Token()
	require.ErrorIs(t, err, appErrors.ErrNoSession)
	assert.False(t, s.Active())

	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s.Begin(models.AuthResponse{
		AccessToken:  signToken(t, exp),
		RefreshToken: "refresh-1",
		User:         models.UserInfo{ID: 1, Email: "shepherd@example.com"},
	})
	assert.True(t, s.Active())
	assert.Equal(t, "refresh-1", s.RefreshToken())
	assert.Equal(t, int64(1), s.User().ID)
	assert.True(t, exp.Equal(s.ExpiresAt()))

	s.End()
	assert.False(t, s.Active())
	assert.Equal(t, "", s.RefreshToken())
}

func TestSessionNeedsRefresh(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New()
	s.now = func() time.Time { return base }

	s.Begin(models.AuthResponse{AccessToken: signToken(t, base.Add(30*time.Second))})
	assert.True(t, s.NeedsRefresh(time.Minute))
	assert.False(t, s.NeedsRefresh(10*time.Second))
}

func TestSessionOpaqueToken(t *testing.T) {
	s := New()
	s.Begin(models.AuthResponse{AccessToken: "opaque"})
	assert.True(t, s.Active())
	assert.True(t, s.ExpiresAt().IsZero())
	assert.False(t, s.NeedsRefresh(time.Hour))
}

func TestRefreshKeepsUserWhenAbsent(t *testing.T) {
	s := New()
	s.Begin(models.AuthResponse{AccessToken: "a", User: models.UserInfo{ID: 9}})
	s.Begin(models.AuthResponse{AccessToken: "b"})
	assert.Equal(t, int64(9), s.User().ID)
}
