// Package ui implements the interactive terminal surface: the member form,
// the search/sort/filter controls, the roster table, the theme menu, and
// the delete confirmation, all driven by a single Bubble Tea event loop.
package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"kintrack/pkg/theme"
)

// Styles holds the styled components for the active theme.
type Styles struct {
	Theme theme.Theme

	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style

	InputBox        lipgloss.Style
	InputBoxFocused lipgloss.Style
	Submit          lipgloss.Style
	SubmitFocused   lipgloss.Style
	Selector        lipgloss.Style
	SelectorFocused lipgloss.Style

	Counter    lipgloss.Style
	DetailPane lipgloss.Style
	StatusBar  lipgloss.Style

	OverlayBox       lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemSelected lipgloss.Style

	Toast      lipgloss.Style
	ToastError lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		Theme: t,

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputBoxFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Submit: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Secondary).
			Padding(0, 2),

		SubmitFocused: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Selector: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 1),

		SelectorFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Padding(0, 1).
			Bold(true),

		Counter: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		DetailPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 1),

		OverlayBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		MenuItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		MenuItemSelected: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1).
			Bold(true),

		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e53935")).
			Padding(0, 1),
	}
}

// tableStyles builds the bubbles table styling for a theme.
func tableStyles(t theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Primary).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(t.Background).
		Background(t.Primary).
		Bold(false)
	s.Cell = s.Cell.
		Foreground(t.Foreground)
	return s
}
