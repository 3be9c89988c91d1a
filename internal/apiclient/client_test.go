package apiclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/apitest"
	"github.com/noah-isme/flock-console/internal/models"
	"github.com/noah-isme/flock-console/internal/session"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
	"github.com/noah-isme/flock-console/pkg/requestid"
)

type observerStub struct {
	routes []string
	status []int
}

func (o *observerStub) ObserveAPIRequest(method, route string, status int, duration time.Duration) {
	o.routes = append(o.routes, method+" "+route)
	o.status = append(o.status, status)
}

func newTestClient(t *testing.T, srv *apitest.Server, obs RequestObserver) *Client {
	t.Helper()
	sess := session.New()
	sess.Begin(models.AuthResponse{AccessToken: srv.Token()})
	return New(Options{BaseURL: srv.BaseURL(), Session: sess, Metrics: obs, UserAgent: "flockctl-test"})
}

func TestClientGetDecodesArray(t *testing.T) {
	srv := apitest.New(t)
	srv.AddSheep(models.Sheep{TagID: "GRN-001", Breed: "Suffolk", Sex: models.SexMale})
	obs := &observerStub{}
	client := newTestClient(t, srv, obs)

	var sheep []models.Sheep
	require.NoError(t, client.Get(context.Background(), "/sheep", nil, &sheep))
	require.Len(t, sheep, 1)
	assert.Equal(t, "GRN-001", sheep[0].TagID)
	assert.Equal(t, []string{"GET /sheep"}, obs.routes)
	assert.Equal(t, []int{http.StatusOK}, obs.status)

	headers := srv.LastHeaders()
	assert.Contains(t, headers.Get("Authorization"), "Bearer ")
	assert.NotEmpty(t, headers.Get(requestid.Header))
	assert.Equal(t, "flockctl-test", headers.Get("User-Agent"))
}

func TestClientPropagatesRequestID(t *testing.T) {
	srv := apitest.New(t)
	client := newTestClient(t, srv, nil)

	ctx := requestid.With(context.Background(), "req-42")
	require.NoError(t, client.Get(ctx, "/sheep", nil, &[]models.Sheep{}))
	assert.Equal(t, "req-42", srv.LastHeaders().Get(requestid.Header))
}

func TestClientNon2xxIsTypedRemoteError(t *testing.T) {
	srv := apitest.New(t)
	client := newTestClient(t, srv, nil)

	err := client.Get(context.Background(), "/mating-pairs/99", nil, &models.MatingPair{})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.True(t, appErrors.IsRemote(err))
	assert.Equal(t, "Mating pair not found", appErrors.FromError(err).Message)

	srv.Fail(http.MethodDelete, "/mating-pairs/:id", http.StatusInternalServerError)
	err = client.Delete(context.Background(), IDPath("/mating-pairs", 3))
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestClientTransportError(t *testing.T) {
	sess := session.New()
	sess.Begin(models.AuthResponse{AccessToken: "x"})
	client := New(Options{BaseURL: "http://127.0.0.1:1", Session: sess, Timeout: time.Second})

	err := client.Get(context.Background(), "/sheep", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrTransport)
	assert.True(t, appErrors.IsRemote(err))
}

func TestClientRequiresSession(t *testing.T) {
	srv := apitest.New(t)
	client := New(Options{BaseURL: srv.BaseURL()})

	err := client.Get(context.Background(), "/sheep", nil, nil)
	assert.ErrorIs(t, err, appErrors.ErrNoSession)
	assert.Equal(t, 0, srv.Hits(http.MethodGet, "/sheep"))
}

type refresherStub struct {
	calls  int
	client *Client
	srv    *apitest.Server
}

func (r *refresherStub) Refresh(ctx context.Context) error {
	r.calls++
	r.client.Session().Begin(models.AuthResponse{AccessToken: r.srv.Token()})
	return nil
}

func TestClientRefreshesExpiringToken(t *testing.T) {
	srv := apitest.New(t)
	srv.SetTokenTTL(10 * time.Second)
	client := newTestClient(t, srv, nil)
	client.refreshSkew = time.Minute
	srv.SetTokenTTL(time.Hour)

	refresher := &refresherStub{client: client, srv: srv}
	client.SetRefresher(refresher)

	require.NoError(t, client.Get(context.Background(), "/sheep", nil, &[]models.Sheep{}))
	assert.Equal(t, 1, refresher.calls)

	require.NoError(t, client.Get(context.Background(), "/sheep", nil, &[]models.Sheep{}))
	assert.Equal(t, 1, refresher.calls)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/mating-pairs/:id", routeLabel("/mating-pairs/12"))
	assert.Equal(t, "/sheep/available-rams", routeLabel("sheep/available-rams"))
	assert.Equal(t, "/health", routeLabel("/health/"))
}
