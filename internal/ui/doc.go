// Package ui holds the terminal color themes shared by the CLI, the REPL and
// the result presenter. Colors are plain ANSI escape sequences selected from
// the active Theme; framed blocks are rendered with lipgloss.
//
// The active theme honors --no-color and the NO_COLOR environment variable.
package ui
