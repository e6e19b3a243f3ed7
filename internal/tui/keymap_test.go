package tui

import (
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_Quit(t *testing.T) {
	km := DefaultKeyMap()
	if !km.Quit.Enabled() {
		t.Fatal("Quit binding is disabled")
	}
	for _, k := range []string{"q", "ctrl+c"} {
		if !slices.Contains(km.Quit.Keys(), k) {
			t.Errorf("Quit binding lacks %q", k)
		}
	}
	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit) {
		t.Error("ctrl+c does not match Quit")
	}
	if key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, km.Quit) {
		t.Error("x matches Quit")
	}
}
