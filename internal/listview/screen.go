package listview

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/flock-console/internal/notify"
	appErrors "github.com/noah-isme/flock-console/pkg/errors"
	"github.com/noah-isme/flock-console/pkg/export"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 10

// ErrClosed is returned by operations on a screen after Close.
var ErrClosed = appErrors.New("SCREEN_CLOSED", 0, "screen closed")

// Loader fetches the whole collection.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Deleter removes one record remotely.
type Deleter func(ctx context.Context, id int64) error

// ConfirmFunc asks the user to confirm deleting record.
type ConfirmFunc[T any] func(record T) bool

// Options configures a Screen.
type Options struct {
	PageSize int
	Notifier *notify.Notifier
	Logger   *zap.Logger
}

// Screen owns one fetched collection for its lifetime and derives the
// displayed view from it. Load and Delete are serialised: starting either
// while another is in flight returns ErrBusy without touching the network.
// Safe for concurrent use.
type Screen[T any] struct {
	spec     Spec[T]
	load     Loader[T]
	remove   Deleter
	notifier *notify.Notifier
	logger   *zap.Logger
	pageSize int
	csv      *export.CSVExporter
	pdf      *export.PDFExporter

	mu         sync.Mutex
	records    []T
	query      Query
	loaded     bool
	inFlight   bool
	closed     bool
	lastErr    error
	loadBanner string
}

// NewScreen builds a screen. remove may be nil for read-only lists.
func NewScreen[T any](spec Spec[T], load Loader[T], remove Deleter, opts Options) *Screen[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New(opts.Logger)
	}
	order := spec.DefaultOrder
	if order == "" {
		order = Asc
	}
	return &Screen[T]{
		spec:     spec,
		load:     load,
		remove:   remove,
		notifier: opts.Notifier,
		logger:   opts.Logger.With(zap.String("screen", spec.Plural)),
		pageSize: opts.PageSize,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		query:    Query{Status: StatusAll, SortField: spec.DefaultSort, SortOrder: order, Page: 1},
	}
}

// Notifier returns the banners raised by this screen.
func (s *Screen[T]) Notifier() *notify.Notifier {
	return s.notifier
}

// Spec returns the screen's field accessors.
func (s *Screen[T]) Spec() Spec[T] {
	return s.spec
}

// Load fetches the collection and replaces the held one wholesale. On
// failure the previous collection is kept and a retryable banner is raised.
func (s *Screen[T]) Load(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	records, err := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if s.closed {
		s.logger.Debug("load result discarded after close")
		return ErrClosed
	}
	if s.loadBanner != "" {
		s.notifier.Dismiss(s.loadBanner)
		s.loadBanner = ""
	}
	if err != nil {
		s.lastErr = err
		s.logger.Warn("load failed", zap.Error(err))
		s.loadBanner = s.notifier.Error(fmt.Sprintf("Failed to load %s. Please try again.", s.spec.Plural), s.Load)
		return err
	}
	s.records = slices.Clone(records)
	s.loaded = true
	s.lastErr = nil
	s.logger.Debug("loaded", zap.Int("records", len(records)))
	return nil
}

// Delete asks confirm (nil means confirmed) and deletes the record with id.
// On success exactly that record leaves the collection; on failure the
// collection is unchanged and a retryable banner is raised. It reports
// whether the record was deleted.
func (s *Screen[T]) Delete(ctx context.Context, id int64, confirm ConfirmFunc[T]) (bool, error) {
	if s.remove == nil {
		return false, appErrors.Clone(appErrors.ErrInternal, s.spec.Plural+" cannot be deleted")
	}
	record, ok := s.find(id)
	if !ok {
		return false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %d is not in the list", s.spec.Singular, id))
	}
	if confirm != nil && !confirm(record) {
		return false, nil
	}
	if err := s.begin(); err != nil {
		return false, err
	}
	err := s.remove(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	if s.closed {
		return false, ErrClosed
	}
	if err != nil {
		s.lastErr = err
		s.logger.Warn("delete failed", zap.Int64("id", id), zap.Error(err))
		s.notifier.Error(fmt.Sprintf("Failed to delete %s. Please try again.", s.spec.Singular), func(ctx context.Context) error {
			_, err := s.Delete(ctx, id, nil)
			return err
		})
		return false, err
	}
	s.records = slices.DeleteFunc(s.records, func(r T) bool { return s.spec.ID(r) == id })
	s.lastErr = nil
	if pages := s.pageCountLocked(); s.query.Page > pages && pages > 0 {
		s.query.Page = pages
	}
	s.notifier.Success(fmt.Sprintf("%s deleted", capitalise(s.spec.Singular)))
	s.logger.Info("deleted", zap.Int64("id", id))
	return true, nil
}

// Close abandons interest in in-flight results. Results that arrive later
// are discarded.
func (s *Screen[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Busy reports whether a load or delete is in flight.
func (s *Screen[T]) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Loaded reports whether at least one load succeeded.
func (s *Screen[T]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Err is the last load or delete failure, nil after a success.
func (s *Screen[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Records returns a copy of the held collection in fetch order.
func (s *Screen[T]) Records() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Query returns the current view state.
func (s *Screen[T]) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// SetSearch changes the search term and resets to page 1.
func (s *Screen[T]) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = term
	s.query.Page = 1
}

// SetStatus changes the status filter and resets to page 1. An empty status
// means StatusAll.
func (s *Screen[T]) SetStatus(status string) {
	if status == "" {
		status = StatusAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Status = status
	s.query.Page = 1
}

// SetSort changes the sort key and resets to page 1.
func (s *Screen[T]) SetSort(field string, order SortOrder) error {
	if _, ok := s.spec.Sorts[field]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("cannot sort %s by %q", s.spec.Plural, field))
	}
	if order != Desc {
		order = Asc
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SortField = field
	s.query.SortOrder = order
	s.query.Page = 1
	return nil
}

// ToggleSort flips the order when field is already the sort key, else sorts
// ascending by field.
func (s *Screen[T]) ToggleSort(field string) error {
	s.mu.Lock()
	order := Asc
	if s.query.SortField == field {
		order = s.query.SortOrder.Flip()
	}
	s.mu.Unlock()
	return s.SetSort(field, order)
}

// SetPage moves to page n without touching filters.
func (s *Screen[T]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Page = n
}

// Filtered returns the derived view without pagination.
func (s *Screen[T]) Filtered() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Derive(s.records, s.query, s.spec)
}

// View returns the current page of the derived view.
func (s *Screen[T]) View() Page[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Paginate(Derive(s.records, s.query, s.spec), s.query.Page, s.pageSize)
}

// Dataset converts the derived view into export rows.
func (s *Screen[T]) Dataset() export.Dataset {
	rows := s.Filtered()
	spec := s.spec.Export
	data := export.Dataset{Headers: spec.Headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, record := range rows {
		values := spec.Row(record)
		row := make(map[string]string, len(spec.Headers))
		for i, header := range spec.Headers {
			if i < len(values) {
				row[header] = values[i]
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// Export renders the filtered, sorted (not paginated) view as CSV, named
// with the date of now.
func (s *Screen[T]) Export(now time.Time) (export.Artifact, error) {
	payload, err := s.csv.Render(s.Dataset())
	if err != nil {
		return export.Artifact{}, err
	}
	return export.Artifact{
		Filename:    export.Filename(s.spec.Export.Prefix, s.csv.Extension(), now),
		ContentType: s.csv.ContentType(),
		Data:        payload,
	}, nil
}

// ExportPDF renders the same rows as Export into a PDF table.
func (s *Screen[T]) ExportPDF(now time.Time) (export.Artifact, error) {
	payload, err := s.pdf.Render(s.Dataset(), s.spec.Export.Title)
	if err != nil {
		return export.Artifact{}, err
	}
	return export.Artifact{
		Filename:    export.Filename(s.spec.Export.Prefix, s.pdf.Extension(), now),
		ContentType: s.pdf.ContentType(),
		Data:        payload,
	}, nil
}

func (s *Screen[T]) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.inFlight {
		return appErrors.Clone(appErrors.ErrBusy, fmt.Sprintf("%s: another request is still in flight", s.spec.Plural))
	}
	s.inFlight = true
	return nil
}

func (s *Screen[T]) find(id int64) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range s.records {
		if s.spec.ID(record) == id {
			return record, true
		}
	}
	var zero T
	return zero, false
}

func (s *Screen[T]) pageCountLocked() int {
	filtered := Derive(s.records, s.query, s.spec)
	return (len(filtered) + s.pageSize - 1) / s.pageSize
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
