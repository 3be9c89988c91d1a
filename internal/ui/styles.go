// Package ui renders list pages, banners and summaries for the terminal.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette used by the renderers.
type Theme struct {
	Primary lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
}

// DefaultTheme is a muted pasture palette.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#5A8F29"),
	Success: lipgloss.Color("#2E7D32"),
	Error:   lipgloss.Color("#C62828"),
	Info:    lipgloss.Color("#1565C0"),
	Muted:   lipgloss.Color("#8A8A8A"),
	Border:  lipgloss.Color("#4E5D3A"),
}

// Styles groups the lipgloss styles used by the renderers.
type Styles struct {
	Theme Theme

	Title      lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Footer     lipgloss.Style
	Label      lipgloss.Style
	Value      lipgloss.Style
	BannerBase lipgloss.Style
}

// NewStyles builds styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Cell: lipgloss.NewStyle().
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(22),

		Value: lipgloss.NewStyle().
			Bold(true),

		BannerBase: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1),
	}
}
