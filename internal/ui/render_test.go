package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/flock-console/internal/notify"
)

func TestRendererTable(t *testing.T) {
	r := NewRenderer()
	out := r.Table([]string{"Ram", "Ewe"}, [][]string{{"Bram", "Dolly"}, {"Rex", "Molly"}}, "No mating pairs")
	assert.Contains(t, out, "Ram")
	assert.Contains(t, out, "Dolly")
	assert.Contains(t, out, "Molly")

	assert.Contains(t, r.Table([]string{"Ram"}, nil, "No mating pairs"), "No mating pairs")
}

func TestRendererPageFooter(t *testing.T) {
	r := NewRenderer()
	assert.Contains(t, r.PageFooter(21, 25, 25, 3, 3), "Showing 21-25 of 25")
	assert.Contains(t, r.PageFooter(0, 0, 25, 4, 3), "empty")
	assert.Contains(t, r.PageFooter(0, 0, 0, 1, 0), "No records")
}

func TestRendererBanner(t *testing.T) {
	r := NewRenderer()
	out := r.Banner(notify.Banner{Kind: notify.KindError, Title: "Error", Message: "Failed to load sheep. Please try again.", Retry: func(context.Context) error { return nil }})
	assert.Contains(t, out, "Failed to load sheep")
	assert.Contains(t, out, "retry")

	plain := r.Banner(notify.Banner{Kind: notify.KindSuccess, Title: "Success", Message: "Sheep deleted"})
	assert.NotContains(t, plain, "retry")
}

func TestRendererSummary(t *testing.T) {
	out := NewRenderer().Summary([]Pair{{Label: "Total sheep", Value: "12"}})
	assert.Contains(t, out, "Total sheep")
	assert.Contains(t, out, "12")
}
