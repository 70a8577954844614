package config

import "math"

// Ramp tracks the spawn interval and obstacle speed multiplier as a run
// progresses. Each Step speeds obstacles up by Factor and shrinks the
// interval towards Floor.
type Ramp struct {
	Interval   float64
	Factor     float64
	Floor      float64
	Multiplier float64
}

// NewRamp creates a ramp from spawner settings.
func NewRamp(cfg SpawnerConfig) Ramp {
	return Ramp{
		Interval:   cfg.Interval,
		Factor:     cfg.Factor,
		Floor:      cfg.Floor,
		Multiplier: 1,
	}
}

// Step advances the ramp by one spawn.
func (r *Ramp) Step() {
	r.Multiplier *= r.Factor
	r.Interval = NextInterval(r.Interval, r.Factor, r.Floor)
}

// NextInterval returns the interval after one spawn. It never drops below
// floor.
func NextInterval(interval, factor, floor float64) float64 {
	return math.Max(floor, interval*(2-factor))
}

// StepsToFloor returns how many spawns it takes for the interval to reach
// the floor, or -1 if it never does.
func (r Ramp) StepsToFloor() int {
	if r.Interval <= r.Floor {
		return 0
	}
	if r.Factor <= 1 {
		return -1
	}
	steps := 0
	for interval := r.Interval; interval > r.Floor; steps++ {
		interval = NextInterval(interval, r.Factor, r.Floor)
	}
	return steps
}

// ApplyPreset modifies the spawner ramp based on a difficulty preset.
func ApplyPreset(cfg *LaneRushConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawner.Interval = 3.5
		cfg.Spawner.Factor = 1.03
		cfg.Obstacles.BaseSpeed = 170
	case DifficultyNormal:
		cfg.Spawner.Interval = 3
		cfg.Spawner.Factor = 1.05
	case DifficultyHard:
		cfg.Spawner.Interval = 2.5
		cfg.Spawner.Factor = 1.08
		cfg.Obstacles.BaseSpeed = 240
	case DifficultyFixed:
		cfg.Spawner.Factor = 1
	}
}
