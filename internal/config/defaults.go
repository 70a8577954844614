package config

import (
	_ "embed"
)

//go:embed defaults/lanerush.yaml
var defaultLaneRushYAML []byte

// DefaultLaneRushConfig returns the hardcoded Lane Rush configuration.
func DefaultLaneRushConfig() LaneRushConfig {
	return LaneRushConfig{
		World: WorldConfig{
			Width:       800,
			Height:      600,
			Road:        "road.png",
			ScrollSpeed: 120,
		},
		Vehicle: VehicleConfig{
			Sprite: "car.png",
			Speed:  350,
			Scale:  0.5,
			Hitbox: 0.7,
		},
		Obstacles: ObstacleConfig{
			BaseSpeed:   200,
			ScaleJitter: MaxScaleJitter,
			SpeedJitter: MaxSpeedJitter,
			Catalog: []ObstacleVariant{
				{Sprite: "rock.png", Scale: 0.5},
				{Sprite: "cone.png", Scale: 0.5},
				{Sprite: "barrier.png", Scale: 0.5},
				{Sprite: "crate.png", Scale: 0.5},
			},
		},
		Spawner: SpawnerConfig{
			Interval:   3,
			Factor:     1.05,
			Floor:      0.5,
			Delay:      1,
			TwinOffset: 1.5,
		},
		Controls: ControlsConfig{
			Up:      "w",
			Left:    "a",
			Down:    "s",
			Right:   "d",
			Restart: "r",
		},
		Assets: AssetsConfig{
			TimeoutMS: 5000,
		},
		Audio: AudioConfig{
			Volume:     0.5,
			SampleRate: 44100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultLaneRushYAML
}
