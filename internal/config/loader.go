package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// configNames are the file names searched in each config directory.
var configNames = []string{"lanerush.yaml", "lanerush.yml", "lanerush.toml"}

// Load loads the Lane Rush configuration, applies LANERUSH_* environment
// overrides and validates the result.
// Search order: customPath -> ~/.lanerush/configs -> ./configs -> embedded default
func Load(customPath string) (LaneRushConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (LaneRushConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return LaneRushConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Decode(data, customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, dir := range []string{userConfigDir(), "configs"} {
		if dir == "" {
			continue
		}
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if cfg, err := Decode(data, path); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := Decode(defaultLaneRushYAML, "lanerush.yaml")
	if err != nil {
		return DefaultLaneRushConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Decode parses YAML or TOML, chosen by the extension of name, over the
// hardcoded defaults so that partial files only override what they set.
func Decode(data []byte, name string) (LaneRushConfig, error) {
	cfg := DefaultLaneRushConfig()
	// Lists are replaced, not merged.
	cfg.Obstacles.Catalog = nil

	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, err
	}

	if cfg.Obstacles.Catalog == nil {
		cfg.Obstacles.Catalog = DefaultLaneRushConfig().Obstacles.Catalog
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LANERUSH_* environment variables. Unset
// variables leave the field untouched.
func ApplyEnv(cfg *LaneRushConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: cannot parse env: %w", err)
	}
	return nil
}

// Encode renders cfg as YAML, or as TOML when format is "toml".
func Encode(cfg LaneRushConfig, format string) ([]byte, error) {
	switch format {
	case "", "yaml", "yml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: cannot encode yaml: %w", err)
		}
		return data, nil
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: cannot encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
}

// userConfigDir returns the user config directory, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lanerush", "configs")
}
