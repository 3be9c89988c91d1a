// Package listview derives filtered, sorted and paginated views over an
// in-memory record collection and holds the per-screen state around it.
package listview

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/noah-isme/flock-console/internal/models"
)

// StatusAll disables the status filter.
const StatusAll = "all"

// SortOrder is the direction of the single sort key.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Flip returns the opposite order.
func (o SortOrder) Flip() SortOrder {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Query is the view state of a list screen. It owns no data; the view is
// recomputed from (records, Query) on every render.
type Query struct {
	Search    string
	Status    string
	SortField string
	SortOrder SortOrder
	Page      int
}

// Collator compares sort keys. Text uses locale-aware collation. It is not
// safe for concurrent use; Derive creates one per call.
type Collator struct {
	text *collate.Collator
}

// NewCollator returns an English collator.
func NewCollator() *Collator {
	return &Collator{text: collate.New(language.English)}
}

// Strings compares two strings.
func (c *Collator) Strings(a, b string) int {
	return c.text.CompareString(a, b)
}

// Dates compares optional dates; a missing date sorts before any date.
func (c *Collator) Dates(a, b *models.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

// Comparator orders two records ascending.
type Comparator[T any] func(c *Collator, a, b T) int

// ByText sorts on a textual field.
func ByText[T any](field func(T) string) Comparator[T] {
	return func(c *Collator, a, b T) int {
		return c.Strings(field(a), field(b))
	}
}

// ByDate sorts on an optional date field.
func ByDate[T any](field func(T) *models.Date) Comparator[T] {
	return func(c *Collator, a, b T) int {
		return c.Dates(field(a), field(b))
	}
}

// ExportSpec describes the export columns of a screen.
type ExportSpec[T any] struct {
	Headers []string
	Row     func(T) []string
	Prefix  string
	Title   string
}

// Spec parameterises the generic list logic with field accessors.
type Spec[T any] struct {
	// Singular and Plural name the entity in user-facing messages.
	Singular     string
	Plural       string
	ID           func(T) int64
	SearchFields func(T) []string
	Status       func(T) string
	Sorts        map[string]Comparator[T]
	DefaultSort  string
	DefaultOrder SortOrder
	Export       ExportSpec[T]
}

// SortFields lists the accepted sort keys in a stable order.
func (s Spec[T]) SortFields() []string {
	fields := make([]string, 0, len(s.Sorts))
	for field := range s.Sorts {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// Derive filters and sorts records without mutating them. A record passes
// when it matches the search term (case-insensitive substring over the
// spec's search fields) and the status filter. The sort is stable, so
// records with equal keys keep their collection order. An unknown sort
// field leaves the filtered order untouched.
func Derive[T any](records []T, q Query, spec Spec[T]) []T {
	needle := strings.ToLower(q.Search)
	out := make([]T, 0, len(records))
	for _, record := range records {
		if !matchesSearch(record, needle, spec) || !matchesStatus(record, q.Status, spec) {
			continue
		}
		out = append(out, record)
	}

	compare, ok := spec.Sorts[q.SortField]
	if !ok {
		return out
	}
	col := NewCollator()
	sign := 1
	if q.SortOrder == Desc {
		sign = -1
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return sign * compare(col, a, b)
	})
	return out
}

func matchesSearch[T any](record T, needle string, spec Spec[T]) bool {
	if needle == "" || spec.SearchFields == nil {
		return true
	}
	for _, field := range spec.SearchFields(record) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesStatus[T any](record T, status string, spec Spec[T]) bool {
	if status == "" || status == StatusAll || spec.Status == nil {
		return true
	}
	return spec.Status(record) == status
}

// Page is one page of a derived view.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	// From and To are the 1-based positions of the first and last item on
	// the page, both 0 when the page is empty.
	From int
	To   int
}

// Paginate slices items into fixed-size 1-based pages. Pages below 1 clamp
// to 1; pages past the end are empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}
	total := len(items)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
	}
	start := (page - 1) * size
	if start >= total {
		return result
	}
	end := min(start+size, total)
	result.Items = slices.Clone(items[start:end])
	result.From = start + 1
	result.To = end
	return result
}
