// Package notify keeps the dismissible banners a screen shows the user.
package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind is the severity of a banner.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// Banner is a message shown until dismissed. Retry, when set, re-runs the
// operation that failed.
type Banner struct {
	ID      string
	Kind    Kind
	Title   string
	Message string
	Retry   func(ctx context.Context) error
}

// Retryable reports whether the banner offers a retry action.
func (b Banner) Retryable() bool {
	return b.Retry != nil
}

// Notifier stores banners in the order they were raised. Safe for concurrent use.
type Notifier struct {
	mu      sync.Mutex
	banners []Banner
	logger  *zap.Logger
}

// New constructs an empty notifier.
func New(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger}
}

// Add raises a banner and returns its id.
func (n *Notifier) Add(b Banner) string {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	n.mu.Lock()
	n.banners = append(n.banners, b)
	n.mu.Unlock()
	n.logger.Debug("banner raised", zap.String("id", b.ID), zap.String("kind", string(b.Kind)), zap.String("message", b.Message))
	return b.ID
}

// Error raises an error banner.
func (n *Notifier) Error(message string, retry func(ctx context.Context) error) string {
	return n.Add(Banner{Kind: KindError, Title: "Error", Message: message, Retry: retry})
}

// Success raises a success banner.
func (n *Notifier) Success(message string) string {
	return n.Add(Banner{Kind: KindSuccess, Title: "Success", Message: message})
}

// Dismiss removes the banner with id. Unknown ids are ignored.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, b := range n.banners {
		if b.ID == id {
			n.banners = append(n.banners[:i], n.banners[i+1:]...)
			return
		}
	}
}

// Clear removes every banner.
func (n *Notifier) Clear() {
	n.mu.Lock()
	n.banners = nil
	n.mu.Unlock()
}

// List returns a copy of the current banners.
func (n *Notifier) List() []Banner {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Banner, len(n.banners))
	copy(out, n.banners)
	return out
}

// Retry dismisses the banner and re-runs its retry action. It returns false
// and leaves the banners untouched when the banner does not exist or offers
// no retry.
func (n *Notifier) Retry(ctx context.Context, id string) (bool, error) {
	n.mu.Lock()
	var retry func(context.Context) error
	for i := range n.banners {
		if n.banners[i].ID == id {
			retry = n.banners[i].Retry
			if retry != nil {
				n.banners = append(n.banners[:i], n.banners[i+1:]...)
			}
			break
		}
	}
	n.mu.Unlock()
	if retry == nil {
		return false, nil
	}
	return true, retry(ctx)
}
