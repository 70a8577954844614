// Package config provides YAML and TOML configuration loading, environment
// overrides and difficulty presets for Lane Rush.
package config

import (
	"errors"
	"fmt"
)

// Caps on the per-obstacle random jitter.
const (
	MaxScaleJitter = 0.25
	MaxSpeedJitter = 0.10
)

// LaneRushConfig contains all configuration for a Lane Rush run.
type LaneRushConfig struct {
	World     WorldConfig    `yaml:"world" toml:"world"`
	Vehicle   VehicleConfig  `yaml:"vehicle" toml:"vehicle"`
	Obstacles ObstacleConfig `yaml:"obstacles" toml:"obstacles"`
	Spawner   SpawnerConfig  `yaml:"spawner" toml:"spawner"`
	Controls  ControlsConfig `yaml:"controls" toml:"controls"`
	Assets    AssetsConfig   `yaml:"assets" toml:"assets"`
	Audio     AudioConfig    `yaml:"audio" toml:"audio"`
}

// WorldConfig defines the playfield.
type WorldConfig struct {
	Width       float64 `yaml:"width" toml:"width" env:"LANERUSH_WORLD_WIDTH"`
	Height      float64 `yaml:"height" toml:"height" env:"LANERUSH_WORLD_HEIGHT"`
	Road        string  `yaml:"road" toml:"road"`
	ScrollSpeed float64 `yaml:"scroll_speed" toml:"scroll_speed" env:"LANERUSH_SCROLL_SPEED"` // Backdrop scroll in units per second
	Diagnostics bool    `yaml:"diagnostics" toml:"diagnostics" env:"LANERUSH_DIAGNOSTICS"`   // Draw frame time and FPS
}

// VehicleConfig defines the player's vehicle.
type VehicleConfig struct {
	Sprite string  `yaml:"sprite" toml:"sprite"`
	Speed  float64 `yaml:"speed" toml:"speed" env:"LANERUSH_VEHICLE_SPEED"` // Units per second
	Scale  float64 `yaml:"scale" toml:"scale"`
	Hitbox float64 `yaml:"hitbox" toml:"hitbox" env:"LANERUSH_VEHICLE_HITBOX"` // Collision box as a fraction of the drawn size
}

// ObstacleConfig defines falling obstacles.
type ObstacleConfig struct {
	BaseSpeed   float64           `yaml:"base_speed" toml:"base_speed" env:"LANERUSH_OBSTACLE_SPEED"`
	ScaleJitter float64           `yaml:"scale_jitter" toml:"scale_jitter"` // At most MaxScaleJitter
	SpeedJitter float64           `yaml:"speed_jitter" toml:"speed_jitter"` // At most MaxSpeedJitter
	Catalog     []ObstacleVariant `yaml:"catalog" toml:"catalog"`
}

// ObstacleVariant is one sprite/scale pair obstacles are drawn from.
type ObstacleVariant struct {
	Sprite string  `yaml:"sprite" toml:"sprite"`
	Scale  float64 `yaml:"scale" toml:"scale"`
}

// SpawnerConfig defines the difficulty ramp.
type SpawnerConfig struct {
	Interval   float64 `yaml:"interval" toml:"interval" env:"LANERUSH_SPAWN_INTERVAL"` // Seconds between spawns at start
	Factor     float64 `yaml:"factor" toml:"factor" env:"LANERUSH_SPAWN_FACTOR"`       // Speed increase per spawn, in [1, 2)
	Floor      float64 `yaml:"floor" toml:"floor"`                                     // Lower bound of the interval
	Delay      float64 `yaml:"delay" toml:"delay"`                                     // Seconds before the first spawn
	TwinOffset float64 `yaml:"twin_offset" toml:"twin_offset"`                         // Extra delay of the second spawner in twin mode
	Debug      bool    `yaml:"debug" toml:"debug" env:"LANERUSH_SPAWNER_DEBUG"`
}

// ControlsConfig maps actions to key identifiers.
type ControlsConfig struct {
	Up      string `yaml:"up" toml:"up"`
	Left    string `yaml:"left" toml:"left"`
	Down    string `yaml:"down" toml:"down"`
	Right   string `yaml:"right" toml:"right"`
	Restart string `yaml:"restart" toml:"restart"`
}

// AssetsConfig defines where sprites come from.
type AssetsConfig struct {
	Dir       string `yaml:"dir" toml:"dir" env:"LANERUSH_ASSETS_DIR"` // Empty uses built-in sprites only
	TimeoutMS int    `yaml:"timeout_ms" toml:"timeout_ms" env:"LANERUSH_ASSETS_TIMEOUT_MS"`
}

// AudioConfig defines sound cues.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled" toml:"enabled" env:"LANERUSH_SOUND"`
	Volume     float64 `yaml:"volume" toml:"volume"`
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
}

// Validate reports every malformed setting, joined into one error.
func (c LaneRushConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Vehicle.Speed < 0 {
		errs = append(errs, fmt.Errorf("vehicle speed must not be negative, got %v", c.Vehicle.Speed))
	}
	if c.Vehicle.Scale <= 0 {
		errs = append(errs, fmt.Errorf("vehicle scale must be positive, got %v", c.Vehicle.Scale))
	}
	if c.Vehicle.Hitbox <= 0 || c.Vehicle.Hitbox > 1 {
		errs = append(errs, fmt.Errorf("vehicle hitbox must be in (0, 1], got %v", c.Vehicle.Hitbox))
	}

	if c.Obstacles.BaseSpeed <= 0 {
		errs = append(errs, fmt.Errorf("obstacle base speed must be positive, got %v", c.Obstacles.BaseSpeed))
	}
	if c.Obstacles.ScaleJitter < 0 || c.Obstacles.ScaleJitter > MaxScaleJitter {
		errs = append(errs, fmt.Errorf("obstacle scale jitter must be in [0, %v], got %v", MaxScaleJitter, c.Obstacles.ScaleJitter))
	}
	if c.Obstacles.SpeedJitter < 0 || c.Obstacles.SpeedJitter > MaxSpeedJitter {
		errs = append(errs, fmt.Errorf("obstacle speed jitter must be in [0, %v], got %v", MaxSpeedJitter, c.Obstacles.SpeedJitter))
	}
	if len(c.Obstacles.Catalog) == 0 {
		errs = append(errs, errors.New("obstacle catalog is empty"))
	}
	for i, v := range c.Obstacles.Catalog {
		if v.Sprite == "" {
			errs = append(errs, fmt.Errorf("obstacle catalog[%d]: sprite is empty", i))
		}
		if v.Scale <= 0 {
			errs = append(errs, fmt.Errorf("obstacle catalog[%d]: scale must be positive, got %v", i, v.Scale))
		}
	}

	if c.Spawner.Interval <= 0 {
		errs = append(errs, fmt.Errorf("spawner interval must be positive, got %v", c.Spawner.Interval))
	}
	if c.Spawner.Floor <= 0 {
		errs = append(errs, fmt.Errorf("spawner floor must be positive, got %v", c.Spawner.Floor))
	}
	if c.Spawner.Factor < 1 || c.Spawner.Factor >= 2 {
		errs = append(errs, fmt.Errorf("spawner factor must be in [1, 2), got %v", c.Spawner.Factor))
	}
	if c.Spawner.Delay < 0 || c.Spawner.TwinOffset < 0 {
		errs = append(errs, errors.New("spawner delays must not be negative"))
	}

	if c.Controls.Up == "" || c.Controls.Left == "" || c.Controls.Down == "" || c.Controls.Right == "" {
		errs = append(errs, errors.New("every movement control needs a key"))
	}
	if c.Assets.TimeoutMS < 0 {
		errs = append(errs, fmt.Errorf("asset timeout must not be negative, got %d", c.Assets.TimeoutMS))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume must be in [0, 1], got %v", c.Audio.Volume))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}
