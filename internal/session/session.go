// Package session holds the authenticated user's context for the lifetime of
// a login. It is created on login, handed explicitly to the API client and
// cleared on logout.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/flock-console/internal/models"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

// Session stores the current access token and user. Safe for concurrent use.
type Session struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	user         models.UserInfo
	expiresAt    time.Time
	now          func() time.Time
}

// New returns an empty, logged-out session.
func New() *Session {
	return &Session{now: time.Now}
}

// Begin installs the tokens returned by login or refresh. The expiry is read
// from the access token's exp claim when present.
func (s *Session) Begin(resp models.AuthResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		s.refreshToken = resp.RefreshToken
	}
	if resp.User.ID != 0 || resp.User.Email != "" {
		s.user = resp.User
	}
	s.expiresAt = time.Time{}
	if claims, err := ParseClaims(resp.AccessToken); err == nil && claims.ExpiresAt != nil {
		s.expiresAt = claims.ExpiresAt.Time
	}
}

// End clears all session state.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.user = models.UserInfo{}
	s.expiresAt = time.Time{}
}

// Token returns the access token or ErrNoSession.
func (s *Session) Token() (string, error) {
	if s == nil {
		return "", appErrors.ErrNoSession
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accessToken == "" {
		return "", appErrors.ErrNoSession
	}
	return s.accessToken, nil
}

// RefreshToken returns the refresh token, if the backend issued one.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the logged-in user.
func (s *Session) User() models.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetUser replaces the cached user info.
func (s *Session) SetUser(user models.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

// Active reports whether a token is installed.
func (s *Session) Active() bool {
	_, err := s.Token()
	return err == nil
}

// ExpiresAt is the access token expiry; zero when unknown.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// NeedsRefresh reports whether the token expires within skew. Tokens with no
// exp claim never need a refresh.
func (s *Session) NeedsRefresh(skew time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accessToken == "" || s.expiresAt.IsZero() {
		return false
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return !now().Add(skew).Before(s.expiresAt)
}

// ParseClaims decodes a JWT without verifying its signature.
func ParseClaims(token string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
