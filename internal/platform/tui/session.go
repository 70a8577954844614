package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanerush/internal/registry"
)

// SessionModel manages the full session flow: menu -> game -> menu.
// It is the top-level model for the interactive picker and SSH sessions.
type SessionModel struct {
	opts     Options
	menu     MenuModel
	game     *Model
	live     *liveGame
	err      error
	quitting bool
}

// liveGame is shared by every copy of a SessionModel, so the game that is
// running when the program ends can be stopped from outside it.
type liveGame struct {
	game registry.Game
}

// NewSessionModel creates a session that starts at the menu.
func NewSessionModel(opts Options) SessionModel {
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		live: &liveGame{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	id := m.menu.Selected()
	if id == "" {
		return m, cmd
	}

	game, err := registry.Create(id)
	if err == nil {
		var model Model
		model, err = NewModel(game, m.opts)
		if err == nil {
			m.game = &model
			m.live.game = game
			return m, model.Init()
		}
	}

	m.err = fmt.Errorf("tui: cannot play %s: %w", id, err)
	m.opts.Logger.Error("cannot start game", "game", id, "error", err)
	m.quitting = true
	return m, tea.Quit
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.live.game = nil
		m.menu = NewMenuModel(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.game != nil
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// Close stops the game that is running, if any. It is safe to call more
// than once and from any copy of the model.
func (m SessionModel) Close() {
	if m.live == nil || m.live.game == nil {
		return
	}
	m.live.game.Stop()
	m.live.game = nil
}

// RunSession runs the menu and the chosen games until the player quits.
func RunSession(opts Options) error {
	p := tea.NewProgram(NewSessionModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		m.Close()
		return m.Err()
	}
	return nil
}
