package lanerush

import (
	"fmt"
	"image/color"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/engine"
)

// ObstacleSpawner releases obstacles on a shrinking interval and speeds
// each one up more than the last.
type ObstacleSpawner struct {
	*engine.Entity
	run     *Run
	ramp    config.Ramp
	elapsed float64
	spawned int
	debug   bool
}

// NewObstacleSpawner creates a spawner whose first obstacle comes delay
// seconds after the first full interval.
func NewObstacleSpawner(run *Run, cfg config.SpawnerConfig, delay float64) *ObstacleSpawner {
	return &ObstacleSpawner{
		Entity:  engine.NewEntity(engine.EntityOptions{}),
		run:     run,
		ramp:    config.NewRamp(cfg),
		elapsed: -delay,
		debug:   cfg.Debug,
	}
}

// Tick advances the timer and spawns when it runs out.
func (sp *ObstacleSpawner) Tick(dt float64) {
	sp.elapsed += dt
	if sp.elapsed < sp.ramp.Interval {
		return
	}

	sp.elapsed = 0
	sp.ramp.Step()
	sp.spawned++
	sp.run.spawnObstacle(sp.ramp.Multiplier)
}

// Draw shows the ramp state when debugging; the spawner is otherwise
// invisible.
func (sp *ObstacleSpawner) Draw(s engine.Surface, dt float64) {
	if !sp.debug {
		return
	}
	s.SetFont("12px monospace")
	s.SetTextAlign(engine.AlignLeft)
	s.SetFillStyle(color.RGBA{R: 0xff, G: 0xff, B: 0x80, A: 0xff})
	y := s.Height() - 12 - float64(len(sp.run.Spawners)-1-sp.index())*16
	s.FillText(fmt.Sprintf("spawner %d: every %.2fs  x%.3f  n=%d", sp.index(), sp.ramp.Interval, sp.ramp.Multiplier, sp.spawned), 10, y)
}

func (sp *ObstacleSpawner) index() int {
	for i, other := range sp.run.Spawners {
		if other == sp {
			return i
		}
	}
	return 0
}

// Interval returns the current time between spawns in seconds.
func (sp *ObstacleSpawner) Interval() float64 { return sp.ramp.Interval }

// Multiplier returns the current speed multiplier.
func (sp *ObstacleSpawner) Multiplier() float64 { return sp.ramp.Multiplier }

// Elapsed returns the time since the last spawn.
func (sp *ObstacleSpawner) Elapsed() float64 { return sp.elapsed }

// Spawned returns the number of obstacles this spawner released.
func (sp *ObstacleSpawner) Spawned() int { return sp.spawned }
