// Package form holds typed draft state for create and edit screens, runs
// local validation and drives the submit state machine:
//
//	Editing -> Submitting -> Success -> Navigated
//	                      -> Editing (with error)
package form

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"

	playform "github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/notify"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

// DefaultConfirmDelay is how long the success confirmation shows before
// navigating away.
const DefaultConfirmDelay = 1500 * time.Millisecond

// State is the lifecycle position of a form.
type State int

const (
	Editing State = iota
	Submitting
	Success
	Navigated
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Navigated:
		return "navigated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Form errors that are not validation failures.
var (
	ErrSubmitted    = appErrors.New("FORM_SUBMITTED", 0, "form already submitted")
	ErrUnknownField = appErrors.New("UNKNOWN_FIELD", 0, "unknown form field")
)

// SubmitFunc sends a validated draft to an entity service.
type SubmitFunc[D any] func(ctx context.Context, draft D) error

type submitObserver interface {
	ObserveFormSubmit(form, outcome string)
}

// Options configures a Form.
type Options struct {
	// Name labels logs and metrics, e.g. "mating_pair".
	Name string
	// Action completes "Failed to <action>. Please try again.", e.g.
	// "create mating pair".
	Action string
	// SuccessMessage is shown while the form waits to navigate.
	SuccessMessage string
	ConfirmDelay   time.Duration
	Validator      *validator.Validate
	// Notifier, when set, also receives remote failures as retryable banners.
	Notifier *notify.Notifier
	Metrics  submitObserver
	Logger   *zap.Logger
}

// Form is one create or edit screen. Safe for concurrent use.
type Form[D any] struct {
	opts     Options
	decoder  *playform.Decoder
	validate *validator.Validate
	fields   map[string]struct{}
	logger   *zap.Logger

	mu      sync.Mutex
	draft   D
	state   State
	err     error
	message string
}

// New starts a form in Editing with draft as its initial state: empty for
// create screens, seeded from a fetched record for edit screens. D must be a
// struct whose fields carry form tags.
func New[D any](draft D, opts Options) *Form[D] {
	if opts.ConfirmDelay <= 0 {
		opts.ConfirmDelay = DefaultConfirmDelay
	}
	if opts.Validator == nil {
		opts.Validator = NewValidator()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.SuccessMessage == "" {
		opts.SuccessMessage = "Saved successfully"
	}
	return &Form[D]{
		opts:     opts,
		decoder:  playform.NewDecoder(),
		validate: opts.Validator,
		fields:   fieldNames(reflect.TypeOf(draft)),
		logger:   opts.Logger.With(zap.String("form", opts.Name)),
		draft:    draft,
	}
}

// Set updates exactly one named field and clears the shown error.
func (f *Form[D]) Set(field, value string) error {
	if _, ok := f.fields[field]; !ok {
		return appErrors.Clone(ErrUnknownField, fmt.Sprintf("unknown form field %q", field))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	next := f.draft
	if err := f.decoder.Decode(&next, url.Values{field: {value}}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, 0, fmt.Sprintf("set %s", field))
	}
	f.draft = next
	f.err = nil
	return nil
}

// SetAll applies several field updates in order, stopping at the first error.
func (f *Form[D]) SetAll(values map[string]string, order []string) error {
	for _, field := range order {
		value, ok := values[field]
		if !ok {
			continue
		}
		if err := f.Set(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Fields lists the form field names.
func (f *Form[D]) Fields() []string {
	return orderedFieldNames(reflect.TypeOf(f.draft))
}

// Draft returns a copy of the current draft.
func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the current state.
func (f *Form[D]) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err is the error currently shown, nil when none.
func (f *Form[D]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Message is the confirmation shown after a successful submit.
func (f *Form[D]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Validate runs the local rules against the current draft. The first
// failing rule wins. It never touches the network.
func (f *Form[D]) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

// Submit validates the draft and hands it to submit. A validation failure
// keeps the form Editing and never calls submit. A remote failure returns to
// Editing with a generic, retryable message and keeps the draft.
func (f *Form[D]) Submit(ctx context.Context, submit SubmitFunc[D]) error {
	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		return err
	}
	if err := f.validateLocked(); err != nil {
		f.err = err
		f.mu.Unlock()
		f.observe("invalid")
		f.logger.Debug("validation failed", zap.String("message", err.Error()))
		return err
	}
	f.state = Submitting
	f.err = nil
	draft := f.draft
	f.mu.Unlock()

	err := submit(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		cause := appErrors.FromError(err)
		failure := appErrors.Wrap(err, cause.Code, cause.Status, fmt.Sprintf("Failed to %s. Please try again.", f.opts.Action))
		f.state = Editing
		f.err = failure
		f.logger.Warn("submit failed", zap.Error(err))
		f.observe("failed")
		if f.opts.Notifier != nil {
			f.opts.Notifier.Error(failure.Message, func(ctx context.Context) error {
				return f.Submit(ctx, submit)
			})
		}
		return failure
	}
	f.state = Success
	f.message = f.opts.SuccessMessage
	f.logger.Info("submitted")
	f.observe("success")
	return nil
}

// Navigate leaves a successfully submitted form. Navigated is terminal.
func (f *Form[D]) Navigate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Success {
		return appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("cannot navigate while %s", f.state))
	}
	f.state = Navigated
	return nil
}

// AwaitNavigate shows the confirmation for the configured delay and then
// navigates, unless ctx ends first.
func (f *Form[D]) AwaitNavigate(ctx context.Context) error {
	if state := f.State(); state != Success {
		return appErrors.Clone(appErrors.ErrInternal, fmt.Sprintf("cannot navigate while %s", state))
	}
	timer := time.NewTimer(f.opts.ConfirmDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	return f.Navigate()
}

func (f *Form[D]) editableLocked() error {
	switch f.state {
	case Submitting:
		return appErrors.Clone(appErrors.ErrBusy, "form is submitting")
	case Success, Navigated:
		return ErrSubmitted
	}
	return nil
}

func (f *Form[D]) validateLocked() error {
	return firstFailure(f.validate, f.draft)
}

func (f *Form[D]) observe(outcome string) {
	if f.opts.Metrics != nil {
		f.opts.Metrics.ObserveFormSubmit(f.opts.Name, outcome)
	}
}

func fieldNames(t reflect.Type) map[string]struct{} {
	names := make(map[string]struct{})
	for _, name := range orderedFieldNames(t) {
		names[name] = struct{}{}
	}
	return names
}

func orderedFieldNames(t reflect.Type) []string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		names = append(names, name)
	}
	return names
}
