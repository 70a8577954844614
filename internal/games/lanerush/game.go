package lanerush

import (
	"fmt"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/registry"
)

// Registered variants.
const (
	IDSingle = "lanerush"
	IDTwin   = "lanerush-twin"
)

func init() {
	registry.Register(IDSingle, func() registry.Game { return New(IDSingle, "Lane Rush", 1) })
	registry.Register(IDTwin, func() registry.Game { return New(IDTwin, "Lane Rush: Twin Spawners", 2) })
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are
// rejected.
func SetDifficultyPreset(preset string) error {
	if preset == "" {
		difficultyPreset = ""
		return nil
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// LoadConfig loads the configuration the games will use, with the
// difficulty preset applied.
func LoadConfig() (config.LaneRushConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game adapts Lane Rush runs to the registry. Pressing the restart key
// after a crash starts a fresh run in the same environment.
type Game struct {
	id       string
	title    string
	spawners int

	env      registry.Env
	cfg      config.LaneRushConfig
	run      *Run
	restarts int
}

// New creates a Lane Rush variant with the given number of spawners.
func New(id, title string, spawners int) *Game {
	return &Game{id: id, title: title, spawners: spawners}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Start loads the configuration and begins a new run.
func (g *Game) Start(env registry.Env) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("lanerush: cannot start: %w", err)
	}
	g.StartWith(cfg, env)
	return nil
}

// StartWith begins a new run with an explicit configuration.
func (g *Game) StartWith(cfg config.LaneRushConfig, env registry.Env) {
	g.Stop()
	g.env = env
	g.cfg = cfg
	g.run = NewRun(cfg, env, g.spawners)
	g.run.Start()
}

// Stop ends the current run.
func (g *Game) Stop() {
	if g.run != nil {
		g.run.Stop()
		g.run = nil
	}
}

// Frame forwards a frame pulse.
func (g *Game) Frame(ts float64) {
	if g.run != nil {
		g.run.Sim.Frame(ts)
	}
}

// KeyDown forwards a key press, or restarts after a crash.
func (g *Game) KeyDown(key string) {
	if g.run == nil {
		return
	}
	if g.run.Sim.Lost() && key == g.cfg.Controls.Restart {
		g.restart()
		return
	}
	g.run.Sim.KeyDown(key)
}

// KeyUp forwards a key release.
func (g *Game) KeyUp(key string) {
	if g.run != nil {
		g.run.Sim.KeyUp(key)
	}
}

// Resize changes the playfield size.
func (g *Game) Resize(w, h float64) {
	g.cfg.World.Width = w
	g.cfg.World.Height = h
	if g.run != nil {
		g.run.Resize(w, h)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    int(g.run.Sim.Score()),
		GameOver: g.run.Sim.Lost(),
		Running:  g.run.Sim.Running(),
	}
}

// Run returns the current run, or nil.
func (g *Game) Run() *Run {
	return g.run
}

// Restarts returns how many times the run was restarted.
func (g *Game) Restarts() int {
	return g.restarts
}

func (g *Game) restart() {
	g.restarts++
	env := g.env
	// A new seed per restart so runs differ; still reproducible from the first.
	env.Runtime.Seed += int64(g.restarts)
	g.run.Stop()
	g.run = NewRun(g.cfg, env, g.spawners)
	g.run.Start()
}
