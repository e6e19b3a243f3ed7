package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Dashboard styles, rebuilt from the active ui theme by initStyles.
var (
	titleStyle     lipgloss.Style
	sectionStyle   lipgloss.Style
	headingStyle   lipgloss.Style
	nameStyle      lipgloss.Style
	pendingStyle   lipgloss.Style
	doneStyle      lipgloss.Style
	failedStyle    lipgloss.Style
	mismatchStyle  lipgloss.Style
	dimStyle       lipgloss.Style
	footerKeyStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles. Run calls it again because the theme is
// chosen after package initialization.
func initStyles() {
	t := ui.GetCurrentTheme()

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Color(t.Accent))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Color(t.Info))
	headingStyle = lipgloss.NewStyle().Foreground(t.Color(t.Muted))
	nameStyle = lipgloss.NewStyle().Foreground(t.Color(t.Accent))
	pendingStyle = lipgloss.NewStyle().Foreground(t.Color(t.Warning))
	doneStyle = lipgloss.NewStyle().Foreground(t.Color(t.Success))
	failedStyle = lipgloss.NewStyle().Foreground(t.Color(t.Error))
	mismatchStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Color(t.Error))
	dimStyle = lipgloss.NewStyle().Foreground(t.Color(t.Muted))
	footerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Color(t.Accent))
}
