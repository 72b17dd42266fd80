// Package config loads the engine configuration from TOML and builds the
// logger described by it.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Window  WindowConfig  `toml:"window"`
	Logging LoggingConfig `toml:"logging"`
	Scene   SceneConfig   `toml:"scene"`
	Scripts ScriptsConfig `toml:"scripts"`
}

type EngineConfig struct {
	EntityCapacity int           `toml:"entity_capacity"`
	TickRate       time.Duration `toml:"tick_rate"`
	EditMode       bool          `toml:"edit_mode"`
	// InactiveCategories lists categories disabled at startup, by name.
	InactiveCategories []string `toml:"inactive_categories"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type SceneConfig struct {
	Path     string `toml:"path"`
	Autosave bool   `toml:"autosave"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

// Load reads the TOML file at path over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			EntityCapacity: 100,
			TickRate:       time.Second / 60,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "kiln",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
	}
}

func (c *Config) validate() error {
	if c.Engine.EntityCapacity < 1 {
		return fmt.Errorf("engine.entity_capacity must be positive, got %d", c.Engine.EntityCapacity)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate must be positive, got %s", c.Engine.TickRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
