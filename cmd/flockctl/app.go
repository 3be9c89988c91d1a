package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/apiclient"
	"github.com/noah-isme/flock-console/internal/models"
	"github.com/noah-isme/flock-console/internal/notify"
	"github.com/noah-isme/flock-console/internal/service"
	"github.com/noah-isme/flock-console/internal/session"
	"github.com/noah-isme/flock-console/internal/ui"
	"github.com/noah-isme/flock-console/pkg/config"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
	"github.com/noah-isme/flock-console/pkg/storage"
)

// app wires config, the API client and the services for one invocation.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	out    io.Writer
	in     *bufio.Reader
	now    func() time.Time

	metrics   *service.MetricsService
	session   *session.Session
	client    *apiclient.Client
	auth      *service.AuthService
	sheep     *service.SheepService
	health    *service.HealthService
	mating    *service.MatingService
	dashboard *service.DashboardService
	reminders *service.NotificationService
	notifier  *notify.Notifier
	render    *ui.Renderer

	loggedIn bool
}

func newApp(cfg *config.Config, logger *zap.Logger, out io.Writer, in io.Reader) *app {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := service.NewMetricsService()
	opts := apiclient.Options{
		BaseURL:     cfg.API.BaseURL,
		Timeout:     cfg.API.Timeout,
		UserAgent:   cfg.API.UserAgent,
		RefreshSkew: cfg.Session.RefreshSkew,
		Session:     session.New(),
		Logger:      logger.Named("api"),
	}
	if cfg.Metrics.Enabled {
		opts.Metrics = metrics
	}
	client := apiclient.New(opts)
	auth := service.NewAuthService(client, client.Session(), logger.Named("auth"))
	client.SetRefresher(auth)

	sheep := service.NewSheepService(client, logger.Named("sheep"))
	health := service.NewHealthService(client, logger.Named("health"))
	mating := service.NewMatingService(client, logger.Named("mating"))

	return &app{
		cfg:       cfg,
		logger:    logger,
		out:       out,
		in:        bufio.NewReader(in),
		now:       time.Now,
		metrics:   metrics,
		session:   client.Session(),
		client:    client,
		auth:      auth,
		sheep:     sheep,
		health:    health,
		mating:    mating,
		dashboard: service.NewDashboardService(sheep, health, mating, service.DashboardServiceConfig{}, logger.Named("dashboard")),
		reminders: service.NewNotificationService(client, logger.Named("notifications")),
		notifier:  notify.New(logger.Named("notify")),
		render:    ui.NewRenderer(),
	}
}

// authenticate begins a session from FLOCK_TOKEN or by logging in with
// FLOCK_EMAIL / FLOCK_PASSWORD.
func (a *app) authenticate(ctx context.Context) error {
	if a.session.Active() {
		return nil
	}
	if token := strings.TrimSpace(a.cfg.Auth.Token); token != "" {
		a.session.Begin(models.AuthResponse{AccessToken: token})
		return nil
	}
	if a.cfg.Auth.Email == "" || a.cfg.Auth.Password == "" {
		return appErrors.Clone(appErrors.ErrNoSession, "not logged in: set FLOCK_TOKEN or FLOCK_EMAIL and FLOCK_PASSWORD")
	}
	if _, err := a.auth.Login(ctx, models.LoginRequest{Email: a.cfg.Auth.Email, Password: a.cfg.Auth.Password}); err != nil {
		return err
	}
	a.loggedIn = true
	return nil
}

// shutdown ends a session this invocation started.
func (a *app) shutdown(ctx context.Context) {
	if !a.loggedIn {
		return
	}
	a.loggedIn = false
	if err := a.auth.Logout(ctx); err != nil {
		a.logger.Debug("logout on exit failed", zap.Error(err))
	}
}

func (a *app) exportService() (*service.ExportService, error) {
	store, err := storage.NewLocalStorage(a.cfg.Export.Dir)
	if err != nil {
		return nil, err
	}
	return service.NewExportService(store, a.metrics, a.logger.Named("export")), nil
}

// confirm asks a yes/no question on the terminal. Anything but y/yes is no.
func (a *app) confirm(question string) bool {
	a.printf("%s [y/N]: ", question)
	answer, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// flushBanners prints and clears the banners raised so far.
func (a *app) flushBanners(n *notify.Notifier) {
	banners := n.List()
	if len(banners) == 0 {
		return
	}
	a.println(a.render.Banners(banners))
	n.Clear()
}

func (a *app) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...) //nolint:errcheck
}

func (a *app) println(text string) {
	fmt.Fprintln(a.out, text) //nolint:errcheck
}

// userMessage is the message shown for err. A typed cause is appended when
// it says more than the wrapping message.
func userMessage(err error) string {
	e := appErrors.FromError(err)
	if e == nil || e.Code == appErrors.ErrInternal.Code {
		return err.Error()
	}
	var cause *appErrors.Error
	if errors.As(e.Err, &cause) && cause.Message != "" && cause.Message != e.Message {
		return fmt.Sprintf("%s (%s)", e.Message, cause.Message)
	}
	return e.Message
}

func (a *app) today() models.Date {
	now := a.now().UTC()
	return models.NewDate(now.Year(), now.Month(), now.Day())
}
