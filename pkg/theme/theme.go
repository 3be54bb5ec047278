// Package theme implements the tri-state visual theme: an explicit light or
// dark preference, or "system", which follows the terminal background. The
// preference persists independently of the roster data.
package theme

import (
	"encoding/json"

	"github.com/charmbracelet/lipgloss"

	"kintrack/pkg/storage"
)

// Mode is the stored theme preference.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
)

// Modes lists the selectable preferences in menu order.
var Modes = []Mode{ModeSystem, ModeLight, ModeDark}

// ParseMode maps a stored value to a Mode, defaulting to system for
// anything unrecognized or absent.
func ParseMode(value string) Mode {
	switch Mode(value) {
	case ModeLight:
		return ModeLight
	case ModeDark:
		return ModeDark
	default:
		return ModeSystem
	}
}

// Icon returns the menu icon for a mode.
func (m Mode) Icon() string {
	switch m {
	case ModeLight:
		return "🌞"
	case ModeDark:
		return "⏾"
	default:
		return "🌍"
	}
}

// Label returns the menu label for a mode.
func (m Mode) Label() string {
	switch m {
	case ModeLight:
		return "Light Mode"
	case ModeDark:
		return "Dark Mode"
	default:
		return "System Mode"
	}
}

// Manager holds the current preference and derives whether dark is active.
type Manager struct {
	store storage.Store
	mode  Mode

	// systemDark reports the terminal/OS color-scheme signal. Overridable
	// in tests.
	systemDark func() bool
}

// NewManager hydrates the preference from the store, defaulting to system
// when absent or unreadable.
func NewManager(store storage.Store) *Manager {
	mode := ModeSystem
	if data, ok := store.Get(storage.KeyTheme); ok {
		var value string
		if err := json.Unmarshal(data, &value); err == nil {
			mode = ParseMode(value)
		}
	}
	return &Manager{
		store:      store,
		mode:       mode,
		systemDark: lipgloss.HasDarkBackground,
	}
}

// Mode returns the stored preference.
func (m *Manager) Mode() Mode {
	return m.mode
}

// SetMode stores a new preference and persists it.
func (m *Manager) SetMode(mode Mode) error {
	m.mode = mode
	data, err := json.Marshal(string(mode))
	if err != nil {
		return err
	}
	return m.store.Set(storage.KeyTheme, data)
}

// DarkActive derives the active visual state: explicit dark, or system mode
// with a dark terminal background. When the preference is explicit, changes
// in the background signal have no effect.
func (m *Manager) DarkActive() bool {
	switch m.mode {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		return m.systemDark()
	}
}

// Active returns the palette for the currently derived visual state.
func (m *Manager) Active() Theme {
	if m.DarkActive() {
		return DarkTheme()
	}
	return LightTheme()
}

// Theme holds one color scheme.
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light palette.
func LightTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#f4f5f6"),
		Foreground: lipgloss.Color("#1d2633"),
		Primary:    lipgloss.Color("#3b6ea5"),
		Accent:     lipgloss.Color("#2e7d32"),
		Secondary:  lipgloss.Color("#e1e4e8"),
		Muted:      lipgloss.Color("#6B7280"),
		Border:     lipgloss.Color("#dce0e5"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark palette.
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#141d2b"),
		Foreground: lipgloss.Color("#f2f2f2"),
		Primary:    lipgloss.Color("#7aa2f7"),
		Accent:     lipgloss.Color("#A8E6CF"),
		Secondary:  lipgloss.Color("#1e2a3d"),
		Muted:      lipgloss.Color("#8a93a5"),
		Border:     lipgloss.Color("#2a3850"),
		IsDark:     true,
	}
}
