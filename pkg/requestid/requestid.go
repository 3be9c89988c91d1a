package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header carries the request ID on outbound API calls.
const Header = "X-Request-ID"

type contextKey struct{}

// With returns a context carrying the given request ID.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Ensure returns ctx unchanged when it already carries an ID, otherwise a
// child context with a fresh one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := Value(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return With(ctx, id), id
}

// Value returns the request ID stored in ctx.
func Value(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
