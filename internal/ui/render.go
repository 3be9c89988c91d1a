package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/noah-isme/flock-console/internal/notify"
)

// Renderer turns view data into terminal text.
type Renderer struct {
	styles Styles
}

// NewRenderer builds a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles(DefaultTheme)}
}

// Title renders a screen heading.
func (r *Renderer) Title(text string) string {
	return r.styles.Title.Render(text)
}

// Table renders rows under headers. An empty row set renders empty.
func (r *Renderer) Table(headers []string, rows [][]string, empty string) string {
	if len(rows) == 0 {
		return r.styles.Footer.Render(empty)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.styles.Theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.styles.Header
			}
			return r.styles.Cell
		})
	return t.String()
}

// PageFooter summarises the position of a page in the derived view.
func (r *Renderer) PageFooter(from, to, total, page, pages int) string {
	if total == 0 {
		return r.styles.Footer.Render("No records")
	}
	if from == 0 {
		return r.styles.Footer.Render(fmt.Sprintf("Page %d of %d is empty (%d records)", page, pages, total))
	}
	return r.styles.Footer.Render(fmt.Sprintf("Showing %d-%d of %d  ·  page %d of %d", from, to, total, page, pages))
}

// Banner renders a notification. Retryable banners mention how to retry.
func (r *Renderer) Banner(b notify.Banner) string {
	colour := r.styles.Theme.Info
	switch b.Kind {
	case notify.KindError:
		colour = r.styles.Theme.Error
	case notify.KindSuccess:
		colour = r.styles.Theme.Success
	}
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(colour).Render(b.Title), b.Message}
	if b.Retryable() {
		lines = append(lines, r.styles.Footer.Render("Run the command again to retry."))
	}
	return r.styles.BannerBase.BorderForeground(colour).Render(strings.Join(lines, "\n"))
}

// Banners renders every banner in order.
func (r *Renderer) Banners(banners []notify.Banner) string {
	out := make([]string, 0, len(banners))
	for _, b := range banners {
		out = append(out, r.Banner(b))
	}
	return strings.Join(out, "\n")
}

// Pair is one label/value line of a summary.
type Pair struct {
	Label string
	Value string
}

// Summary renders aligned label/value lines.
func (r *Renderer) Summary(pairs []Pair) string {
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, r.styles.Label.Render(p.Label), r.styles.Value.Render(p.Value)))
	}
	return strings.Join(lines, "\n")
}
