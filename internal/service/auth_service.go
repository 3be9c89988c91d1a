package service

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/apiclient"
	"github.com/noah-isme/flock-console/internal/models"
	"github.com/noah-isme/flock-console/internal/session"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

const authPath = "/auth"

type refreshPayload struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// AuthService drives login, logout, token refresh and password resets.
type AuthService struct {
	api     apiCaller
	session *session.Session
	logger  *zap.Logger
}

// NewAuthService constructs the auth service. sess is the session the API
// client authenticates with.
func NewAuthService(api apiCaller, sess *session.Session, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sess == nil {
		sess = session.New()
	}
	return &AuthService{api: api, session: sess, logger: logger}
}

var _ apiclient.Refresher = (*AuthService)(nil)

// Login authenticates the user and begins a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	var resp models.AuthResponse
	err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: authPath + "/login", Body: req, Public: true}, &resp)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrRemote, "login response carried no token")
	}
	s.session.Begin(resp)
	s.logger.Info("login succeeded", zap.Int64("user_id", resp.User.ID))
	return &resp, nil
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: authPath + "/register", Body: req, Public: true}, nil)
}

// Logout ends the session. Local state is cleared even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	defer s.session.End()
	if !s.session.Active() {
		return nil
	}
	err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: authPath + "/logout", NoRefresh: true}, nil)
	if err != nil {
		s.logger.Warn("logout call failed", zap.Error(err))
	}
	return err
}

// Refresh exchanges the current token for a fresh one.
func (s *AuthService) Refresh(ctx context.Context) error {
	if !s.session.Active() {
		return appErrors.ErrNoSession
	}
	var resp models.AuthResponse
	payload := refreshPayload{RefreshToken: s.session.RefreshToken()}
	err := s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: authPath + "/refresh", Body: payload, NoRefresh: true}, &resp)
	if err != nil {
		return err
	}
	if resp.AccessToken == "" {
		return appErrors.Clone(appErrors.ErrRemote, "refresh response carried no token")
	}
	s.session.Begin(resp)
	s.logger.Debug("token refreshed", zap.Time("expires_at", s.session.ExpiresAt()))
	return nil
}

// CurrentUser fetches the logged-in user and caches it on the session.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.UserInfo, error) {
	var user models.UserInfo
	if err := s.api.Get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	s.session.SetUser(user)
	return &user, nil
}

// RequestPasswordReset asks the backend to mail a reset token.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req models.PasswordResetRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: authPath + "/password-reset/request", Body: req, Public: true}, nil)
}

// ConfirmPasswordReset sets a new password using a mailed token.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req models.PasswordResetConfirm) error {
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodPost, Path: authPath + "/password-reset/confirm", Body: req, Public: true}, nil)
}
