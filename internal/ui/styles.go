package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner renders lines inside a rounded frame colored by the active theme.
func Banner(lines ...string) string {
	t := GetCurrentTheme()
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.frame()).
		Padding(0, 2)
	return style.Render(strings.Join(lines, "\n"))
}

// PadRight pads s with spaces up to width terminal cells. Escape sequences
// do not count toward the width.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
