// Package config loads the generator configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/openroads/internal/roads"
	"github.com/talgya/openroads/internal/settlement"
	"github.com/talgya/openroads/internal/terrain"
)

// Config is the root configuration for a generation run.
type Config struct {
	World       terrain.GenConfig      `yaml:"world"`
	Settlements settlement.PlaceConfig `yaml:"settlements"`
	Roads       roads.ConnectConfig    `yaml:"roads"`
	Output      OutputConfig           `yaml:"output"`
	Log         LogConfig              `yaml:"log"`
}

// OutputConfig names the artifacts a run produces.
type OutputConfig struct {
	MapPNG   string `yaml:"map_png"`
	Database string `yaml:"database"`
	PNGScale int    `yaml:"png_scale"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		World:       terrain.DefaultGenConfig(),
		Settlements: settlement.DefaultPlaceConfig(),
		Roads:       roads.DefaultConnectConfig(),
		Output: OutputConfig{
			MapPNG:   "data/map.png",
			Database: "data/openroads.db",
			PNGScale: 4,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file. When path is empty it falls back to
// the ROADGEN_CONFIG environment variable, and to Default() when neither is
// set. Omitted fields keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ROADGEN_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
