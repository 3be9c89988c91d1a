package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/flock-console/internal/apiclient"
	"github.com/noah-isme/flock-console/internal/apitest"
	"github.com/noah-isme/flock-console/internal/models"
	"github.com/noah-isme/flock-console/internal/session"
)

// loggedInClient returns a client authenticated against srv through the
// real login flow.
func loggedInClient(t *testing.T, srv *apitest.Server) (*apiclient.Client, *AuthService) {
	t.Helper()
	sess := session.New()
	client := apiclient.New(apiclient.Options{BaseURL: srv.BaseURL(), Session: sess})
	auth := NewAuthService(client, sess, nil)
	client.SetRefresher(auth)
	_, err := auth.Login(context.Background(), models.LoginRequest{Email: apitest.Email, Password: apitest.Password})
	require.NoError(t, err)
	return client, auth
}
