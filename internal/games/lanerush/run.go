// Package lanerush implements Lane Rush: a car dodges obstacles falling
// down an endless road. Every obstacle that leaves the screen scores its
// width; obstacles come faster the longer the run lasts.
package lanerush

import (
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/engine"
	"github.com/vovakirdan/lanerush/internal/registry"
)

// Run is one play-through: the simulation plus the entities it starts
// with.
type Run struct {
	ID  string
	Sim *engine.Simulation

	Backdrop *Backdrop
	Vehicle  *Vehicle
	Spawners []*ObstacleSpawner
	HUD      *HUD

	cfg     config.LaneRushConfig
	rng     *rand.Rand
	printer *message.Printer
	logger  *log.Logger
	spawned int
}

// NewRun assembles a stopped run with the given number of spawners.
// Each spawner after the first starts later by the configured twin offset.
func NewRun(cfg config.LaneRushConfig, env registry.Env, spawners int) *Run {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Run{
		ID:      uuid.NewString(),
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(env.Runtime.Seed)),
		printer: message.NewPrinter(language.English),
	}
	r.logger = logger.With("run", r.ID[:8])

	r.Sim = engine.NewSimulation(engine.Options{
		Surface:     env.Surface,
		Assets:      env.Assets,
		Scheduler:   env.Scheduler,
		Logger:      r.logger,
		Diagnostics: cfg.World.Diagnostics,
		GameOver:    r.drawGameOver,
		Foreground:  func(s engine.Surface, score float64) { r.HUD.Draw(s, score) },
	})

	if env.Cues != nil {
		cues := env.Cues
		r.Sim.On(engine.EventScore, func(src any, args ...any) { cues.PlayScore() })
		r.Sim.On(engine.EventLose, func(src any, args ...any) { cues.PlayCrash() })
	}

	r.Backdrop = NewBackdrop(cfg.World)
	r.Sim.Spawn(r.Backdrop)

	r.Vehicle = NewVehicle(r, cfg.Vehicle, cfg.Controls)
	r.Sim.Spawn(r.Vehicle)

	if spawners < 1 {
		spawners = 1
	}
	for i := 0; i < spawners; i++ {
		delay := cfg.Spawner.Delay + float64(i)*cfg.Spawner.TwinOffset
		sp := NewObstacleSpawner(r, cfg.Spawner, delay)
		r.Spawners = append(r.Spawners, sp)
		r.Sim.Spawn(sp)
	}

	r.HUD = NewHUD(r)

	return r
}

// Start begins scheduling frames.
func (r *Run) Start() {
	r.logger.Info("run started", "spawners", len(r.Spawners))
	r.Sim.SetRunning(true)
}

// Stop ends the run and cancels pending asset loads.
func (r *Run) Stop() {
	r.Sim.Close()
}

// Resize changes the playfield size.
func (r *Run) Resize(w, h float64) {
	r.Backdrop.Resize(w, h)
}

// Spawned returns the number of obstacles spawned so far.
func (r *Run) Spawned() int {
	return r.spawned
}

// Config returns the configuration the run was built from.
func (r *Run) Config() config.LaneRushConfig {
	return r.cfg
}

// spawnObstacle adds an obstacle drawn from the catalog whose speed is the
// base speed times multiplier, each with random jitter.
func (r *Run) spawnObstacle(multiplier float64) *Obstacle {
	oc := r.cfg.Obstacles
	variant := oc.Catalog[r.rng.Intn(len(oc.Catalog))]
	scale := variant.Scale * Jitter(oc.ScaleJitter, r.rng.Float64())
	speed := oc.BaseSpeed * multiplier * Jitter(oc.SpeedJitter, r.rng.Float64())

	o := NewObstacle(r, variant.Sprite, scale, speed)
	r.Sim.Spawn(o)
	r.spawned++
	return o
}

// FormatScore renders a score with thousands separators.
func (r *Run) FormatScore(score float64) string {
	return r.printer.Sprintf("%d", int(score))
}

func (r *Run) drawGameOver(s engine.Surface, score float64) {
	w, h := s.Width(), s.Height()
	s.SetFillStyle(color.RGBA{A: 0xa0})
	s.FillRect(0, 0, w, h)

	s.SetTextAlign(engine.AlignCenter)
	s.SetFillStyle(color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff})
	s.SetFont("bold 40px sans-serif")
	s.FillText("GAME OVER", w/2, h/2-30)

	s.SetFillStyle(color.White)
	s.SetFont("20px sans-serif")
	s.FillText("Score: "+r.FormatScore(score), w/2, h/2+10)
	s.FillText(fmt.Sprintf("Press %s to restart", strings.ToUpper(r.cfg.Controls.Restart)), w/2, h/2+40)
}
