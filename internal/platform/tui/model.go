package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
	"github.com/vovakirdan/lanerush/internal/registry"
)

// Options configures a terminal host.
type Options struct {
	// Config supplies the world size and key bindings.
	Config  config.LaneRushConfig
	Runtime core.RuntimeConfig
	Assets  engine.AssetLoader
	Logger  *log.Logger
	Cues    registry.Cues
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game    registry.Game
	opts    Options
	screen  *core.Screen
	surface *CellSurface
	pulses  *engine.PulseCounter
	holds   *HoldTracker
	keys    KeyMap
	help    help.Model
	start   time.Time

	gameState  core.GameState
	quitting   bool
	backToMenu bool
}

// NewModel creates a model and starts game on its cell surface.
func NewModel(game registry.Game, opts Options) (Model, error) {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}

	screen := core.NewScreen(opts.Runtime.ScreenW, playRows(opts.Runtime.ScreenH))
	m := Model{
		game:    game,
		opts:    opts,
		screen:  screen,
		surface: NewCellSurface(screen, opts.Config.World.Width, opts.Config.World.Height),
		pulses:  &engine.PulseCounter{},
		holds:   NewHoldTracker(),
		keys:    NewKeyMap(opts.Config.Controls),
		help:    help.New(),
		start:   time.Now(),
	}

	err := game.Start(registry.Env{
		Surface:   m.surface,
		Assets:    opts.Assets,
		Scheduler: m.pulses,
		Logger:    opts.Logger,
		Cues:      opts.Cues,
		Runtime:   opts.Runtime,
	})
	if err != nil {
		return Model{}, fmt.Errorf("tui: cannot start %s: %w", game.ID(), err)
	}
	m.gameState = game.State()
	return m, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// playRows leaves the last terminal row for the help line.
func playRows(h int) int {
	return core.Max(1, h-1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playRows(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.game.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		// Hosts without a menu treat this as quit.
		m.backToMenu = true
		m.game.Stop()
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	id, ok := m.keys.GameKey(msg)
	if !ok {
		return m, nil
	}
	if m.gameState.GameOver {
		// A restart builds a new run with no keys held.
		m.holds.Reset()
	}
	if m.holds.Press(id, now) {
		m.game.KeyDown(id)
	}
	m.gameState = m.game.State()
	return m, nil
}

// handleTick releases expired keys and delivers a pulse if the game asked
// for one.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	for _, k := range m.holds.Expire(now) {
		m.game.KeyUp(k)
	}
	if m.pulses.Take() {
		m.game.Frame(float64(now.Sub(m.start).Microseconds()) / 1000)
	}
	m.gameState = m.game.State()

	return m, tickCmd(m.opts.Runtime.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".lanerush", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the terminal until the player quits.
func Run(game registry.Game, opts Options) error {
	model, err := NewModel(game, opts)
	if err != nil {
		return err
	}
	defer game.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
