package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanerush/internal/config"
)

// KeyMap holds the key bindings of the play screen. Arrow keys are
// aliases of the configured movement keys.
type KeyMap struct {
	Up      key.Binding
	Left    key.Binding
	Down    key.Binding
	Right   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding

	controls config.ControlsConfig
}

// NewKeyMap creates the bindings for the given controls.
func NewKeyMap(c config.ControlsConfig) KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys(c.Up, "up"), key.WithHelp("↑/"+c.Up, "up")),
		Left:     key.NewBinding(key.WithKeys(c.Left, "left"), key.WithHelp("←/"+c.Left, "left")),
		Down:     key.NewBinding(key.WithKeys(c.Down, "down"), key.WithHelp("↓/"+c.Down, "down")),
		Right:    key.NewBinding(key.WithKeys(c.Right, "right"), key.WithHelp("→/"+c.Right, "right")),
		Restart:  key.NewBinding(key.WithKeys(c.Restart), key.WithHelp(c.Restart, "restart")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		controls: c,
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Restart, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Left, k.Down, k.Right},
		{k.Restart, k.Back, k.Quit},
	}
}

// GameKey translates a key message to the identifier the game expects.
// ok is false for keys the game does not use.
func (k KeyMap) GameKey(msg tea.KeyMsg) (id string, ok bool) {
	switch {
	case key.Matches(msg, k.Up):
		return k.controls.Up, true
	case key.Matches(msg, k.Left):
		return k.controls.Left, true
	case key.Matches(msg, k.Down):
		return k.controls.Down, true
	case key.Matches(msg, k.Right):
		return k.controls.Right, true
	case key.Matches(msg, k.Restart):
		return k.controls.Restart, true
	}
	return "", false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionSelect
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action. Navigation keys
// are left to the table.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "enter", " ":
		return MenuActionSelect
	}
	return MenuActionNone
}
