package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanerush/internal/config"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapGameKey(t *testing.T) {
	km := NewKeyMap(config.DefaultLaneRushConfig().Controls)

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected string
		ok       bool
	}{
		{"w", runeKey('w'), "w", true},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, "w", true},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, "a", true},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, "s", true},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, "d", true},
		{"restart", runeKey('r'), "r", true},
		{"unbound", runeKey('x'), "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := km.GameKey(tc.msg)
			if got != tc.expected || ok != tc.ok {
				t.Errorf("GameKey() = (%q, %v), expected (%q, %v)", got, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestKeyMapFollowsControls(t *testing.T) {
	controls := config.DefaultLaneRushConfig().Controls
	controls.Up = "i"

	km := NewKeyMap(controls)
	if got, _ := km.GameKey(runeKey('i')); got != "i" {
		t.Errorf("GameKey(i) = %q, expected i", got)
	}
	if got, _ := km.GameKey(tea.KeyMsg{Type: tea.KeyUp}); got != "i" {
		t.Errorf("GameKey(up) = %q, expected the rebound key i", got)
	}
	if _, ok := km.GameKey(runeKey('w')); ok {
		t.Error("w should be unbound after rebinding up")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey('q'), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
