// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		// Driver is "sqlite" or "postgres".
		Driver string `yaml:"driver"`
		// SQLitePath is the database file for the sqlite driver.
		SQLitePath string `yaml:"sqlite_path"`
		// DSN is the connection string for the postgres driver.
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Host     string        `yaml:"host"`
		Port     string        `yaml:"port"`
		Password string        `yaml:"password"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	Interaction struct {
		DragThresholdPx   float64       `yaml:"drag_threshold_px"`
		LineTolerancePx   float64       `yaml:"line_tolerance_px"`
		HandleTolerancePx float64       `yaml:"handle_tolerance_px"`
		FibBoundsExpand   float64       `yaml:"fib_bounds_expand"`
		MoveMinGap        time.Duration `yaml:"move_min_gap"`
	} `yaml:"interaction"`
	History struct {
		MaxDepth int `yaml:"max_depth"`
	} `yaml:"history"`
	AutoSave struct {
		Delay time.Duration `yaml:"delay"`
	} `yaml:"autosave"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: every field has a default.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("HISTORY_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxDepth = n
		}
	}
	if v := os.Getenv("AUTOSAVE_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AutoSave.Delay = d
		}
	}

	// Defaults
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/chart_drawing.db"
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = 5 * time.Minute
	}
	if cfg.Interaction.DragThresholdPx == 0 {
		cfg.Interaction.DragThresholdPx = 5
	}
	if cfg.Interaction.LineTolerancePx == 0 {
		cfg.Interaction.LineTolerancePx = 10
	}
	if cfg.Interaction.HandleTolerancePx == 0 {
		cfg.Interaction.HandleTolerancePx = 12
	}
	if cfg.Interaction.FibBoundsExpand == 0 {
		cfg.Interaction.FibBoundsExpand = 0.10
	}
	if cfg.Interaction.MoveMinGap == 0 {
		cfg.Interaction.MoveMinGap = 4 * time.Millisecond
	}
	if cfg.History.MaxDepth == 0 {
		cfg.History.MaxDepth = 100
	}
	if cfg.AutoSave.Delay == 0 {
		cfg.AutoSave.Delay = 2 * time.Second
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("database.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	if c.History.MaxDepth < 0 {
		return fmt.Errorf("history.max_depth must not be negative")
	}
	return nil
}
