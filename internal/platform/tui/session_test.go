package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/registry"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := NewSessionModel(Options{
		Config:  config.DefaultLaneRushConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60},
	})

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter should start the selected game")
	}
	if cmd == nil {
		t.Error("starting a game should start its tick loop")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.InGame() {
		t.Fatal("esc should return to the menu")
	}
	if m.View() == "" {
		t.Error("menu should render after returning")
	}

	m, cmd = updateSession(t, m, runeKey('q'))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should quit the session")
	}
	if m.Err() != nil {
		t.Errorf("Err() = %v, expected nil", m.Err())
	}
}

func TestSessionCloseStopsRunningGame(t *testing.T) {
	m := NewSessionModel(Options{
		Config:  config.DefaultLaneRushConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60},
	})
	ctx := context.WithValue(context.Background(), sessionKey{}, m)

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.InGame() {
		t.Fatal("enter should start the selected game")
	}
	g, ok := m.game.game.(*stubGame)
	if !ok {
		t.Fatalf("game = %T, expected *stubGame", m.game.game)
	}

	// The model stored before the game started still reaches it.
	closeSession(ctx)
	if !g.stopped {
		t.Error("closing the session should stop the running game")
	}

	g.stopped = false
	m.Close()
	if g.stopped {
		t.Error("a stopped game should not be stopped twice")
	}
}
