package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration of the gridpath command.
type Config struct {
	Grid   GridConfig   `yaml:"grid" json:"grid"`
	Search SearchConfig `yaml:"search" json:"search"`
	Log    LogConfig    `yaml:"log" json:"log"`
	Server ServerConfig `yaml:"server" json:"server"`
}

// GridConfig fixes the grid extent for a session.
type GridConfig struct {
	Rows int `yaml:"rows" json:"rows"`
	Cols int `yaml:"cols" json:"cols"`
}

// SearchConfig selects the heuristic and wall handling.
type SearchConfig struct {
	Heuristic        string `yaml:"heuristic" json:"heuristic"`
	WallPenalty      int    `yaml:"wall_penalty" json:"wall_penalty"`
	TraversableWalls bool   `yaml:"traversable_walls" json:"traversable_walls"`
	Workers          int    `yaml:"workers" json:"workers"`
}

// LogConfig sets the log level name.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// ServerConfig sets the listen address of the serve command.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Grid:   GridConfig{Rows: gridpath.DefaultRows, Cols: gridpath.DefaultCols},
		Search: SearchConfig{Heuristic: "euclidean"},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a configuration file (YAML or JSON, chosen by extension) on top
// of Default. A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid.rows must be positive, got %d", c.Grid.Rows))
	}
	if c.Grid.Cols <= 0 {
		errs = append(errs, fmt.Errorf("grid.cols must be positive, got %d", c.Grid.Cols))
	}
	if _, err := gridpath.EstimatorByName(c.Search.Heuristic, c.Search.WallPenalty); err != nil {
		errs = append(errs, fmt.Errorf("search.heuristic: %w", err))
	}
	if c.Search.WallPenalty < 0 {
		errs = append(errs, fmt.Errorf("search.wall_penalty must not be negative, got %d", c.Search.WallPenalty))
	}
	if c.Search.Workers < 0 {
		errs = append(errs, fmt.Errorf("search.workers must not be negative, got %d", c.Search.Workers))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// LogLevel returns the configured slog level, falling back to info.
func (c Config) LogLevel() slog.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// SearchOptions converts the search section to engine options.
func (c Config) SearchOptions() ([]gridpath.Option, error) {
	estimator, err := gridpath.EstimatorByName(c.Search.Heuristic, c.Search.WallPenalty)
	if err != nil {
		return nil, err
	}
	opts := []gridpath.Option{gridpath.WithEstimator(estimator)}
	if c.Search.TraversableWalls {
		opts = append(opts, gridpath.WithTraversableWalls())
	}
	if c.Search.Workers > 0 {
		opts = append(opts, gridpath.WithWorkers(c.Search.Workers))
	}
	return opts, nil
}
