package service

import (
	"context"
	"net/url"

	"github.com/noah-isme/flock-console/internal/apiclient"
)

// apiCaller is the slice of *apiclient.Client the entity services use.
type apiCaller interface {
	Get(ctx context.Context, path string, query url.Values, out interface{}) error
	Post(ctx context.Context, path string, body, out interface{}) error
	Put(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
	Do(ctx context.Context, req apiclient.Request, out interface{}) error
}

var _ apiCaller = (*apiclient.Client)(nil)
