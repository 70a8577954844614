package lanerush

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/assets"
	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
	"github.com/vovakirdan/lanerush/internal/registry"
)

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	Config     config.LaneRushConfig
	Spawners   int
	Seed       int64
	FPS        int
	MaxSeconds float64
	// HoldSeconds is how long the driver keeps each random key choice.
	HoldSeconds float64
	Logger      *log.Logger
}

// HeadlessResult summarizes a headless run.
type HeadlessResult struct {
	RunID      string
	Frames     uint64
	Seconds    float64
	Score      float64
	Lost       bool
	Spawned    int
	Interval   float64 // first spawner's interval at the end
	Multiplier float64 // first spawner's multiplier at the end
}

// RunHeadless plays a run without a display. A seeded random walk drives
// the car, sprites load synchronously from the built-in set, and frames
// are pumped at a fixed rate, so the same options give the same result.
func RunHeadless(opts HeadlessOptions) (HeadlessResult, error) {
	if err := opts.Config.Validate(); err != nil {
		return HeadlessResult{}, err
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.MaxSeconds <= 0 {
		return HeadlessResult{}, fmt.Errorf("lanerush: max seconds must be positive, got %v", opts.MaxSeconds)
	}
	if opts.HoldSeconds <= 0 {
		opts.HoldSeconds = 0.25
	}

	cfg := opts.Config
	sched := &engine.PulseCounter{}
	env := registry.Env{
		Surface:   engine.NewRecorder(cfg.World.Width, cfg.World.Height),
		Assets:    assets.New(assets.Options{Dir: cfg.Assets.Dir, Sync: true, Logger: opts.Logger}),
		Scheduler: sched,
		Logger:    opts.Logger,
		Runtime: core.RuntimeConfig{
			ScreenW:  int(cfg.World.Width),
			ScreenH:  int(cfg.World.Height),
			TickRate: opts.FPS,
			Seed:     opts.Seed,
		},
	}

	run := NewRun(cfg, env, opts.Spawners)
	defer run.Stop()
	driver := newRandomDriver(run, opts.Seed, opts.HoldSeconds)

	step := 1000 / float64(opts.FPS)
	limit := opts.MaxSeconds * 1000
	ts := 0.0

	run.Start()
	for sched.Take() {
		if run.Sim.Running() {
			if ts > limit {
				break
			}
			driver.update(ts / 1000)
		}
		run.Sim.Frame(ts)
		ts += step
	}

	first := run.Spawners[0]
	return HeadlessResult{
		RunID:      run.ID,
		Frames:     run.Sim.Frames(),
		Seconds:    float64(run.Sim.Frames()) * step / 1000,
		Score:      run.Sim.Score(),
		Lost:       run.Sim.Lost(),
		Spawned:    run.Spawned(),
		Interval:   first.Interval(),
		Multiplier: first.Multiplier(),
	}, nil
}

// randomDriver holds a random subset of the movement keys, changing the
// choice every hold period.
type randomDriver struct {
	run  *Run
	rng  *rand.Rand
	keys []string
	hold float64
	next float64
}

func newRandomDriver(run *Run, seed int64, hold float64) *randomDriver {
	c := run.Config().Controls
	return &randomDriver{
		run:  run,
		rng:  rand.New(rand.NewSource(seed ^ 0x5eed)),
		keys: []string{c.Up, c.Left, c.Down, c.Right},
		hold: hold,
	}
}

func (d *randomDriver) update(now float64) {
	if now < d.next {
		return
	}
	d.next = now + d.hold
	for _, key := range d.keys {
		if d.rng.Intn(3) == 0 {
			d.run.Sim.KeyDown(key)
		} else {
			d.run.Sim.KeyUp(key)
		}
	}
}
