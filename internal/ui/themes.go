package ui

import (
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a palette of xterm-256 color indexes. A theme with Plain set
// produces no escape sequences at all.
type Theme struct {
	Name    string
	Plain   bool
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

var (
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  "39",
		Muted:   "245",
		Success: "82",
		Warning: "220",
		Error:   "196",
		Info:    "141",
	}
	LightTheme = Theme{
		Name:    "light",
		Accent:  "27",
		Muted:   "240",
		Success: "28",
		Warning: "130",
		Error:   "124",
		Info:    "54",
	}
	// NoColorTheme is selected by --no-color, NO_COLOR or a non-terminal
	// output.
	NoColorTheme = Theme{Name: "none", Plain: true}
)

var active atomic.Pointer[Theme]

func init() { SetCurrentTheme(DarkTheme) }

// fg returns the foreground escape for c.
func (t Theme) fg(c lipgloss.Color) string {
	if t.Plain || c == "" {
		return ""
	}
	return "\033[38;5;" + string(c) + "m"
}

func (t Theme) sgr(code string) string {
	if t.Plain {
		return ""
	}
	return "\033[" + code + "m"
}

// Color returns c for use in a lipgloss style, or no color for a plain
// theme.
func (t Theme) Color(c lipgloss.Color) lipgloss.TerminalColor {
	if t.Plain || c == "" {
		return lipgloss.NoColor{}
	}
	return c
}

// frame is the border color used by Banner.
func (t Theme) frame() lipgloss.TerminalColor { return t.Color(t.Accent) }

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme { return *active.Load() }

// SetCurrentTheme activates t.
func SetCurrentTheme(t Theme) { active.Store(&t) }

// SetTheme activates a theme by name. Unknown names fall back to dark.
func SetTheme(name string) {
	switch name {
	case LightTheme.Name:
		SetCurrentTheme(LightTheme)
	case NoColorTheme.Name:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme picks the startup theme. Colors are off when noColor is set or
// the NO_COLOR variable exists, whatever its value (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
