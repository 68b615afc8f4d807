package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendDir    = "dir"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Listen    string  `yaml:"listen" json:"listen"`
	DataDir   string  `yaml:"data_dir" json:"data_dir"`
	WeekStart string  `yaml:"week_start" json:"week_start"`
	Storage   Storage `yaml:"storage" json:"storage"`
}

type Storage struct {
	// Backend: "dir" (one JSON file per blob), "sqlite", or "memory".
	Backend    string `yaml:"backend" json:"backend"`
	SQLitePath string `yaml:"sqlite_path" json:"sqlite_path"`
}

func Default() *Config {
	return &Config{
		Listen:    ":8373",
		DataDir:   "data",
		WeekStart: "monday",
		Storage: Storage{
			Backend:    BackendDir,
			SQLitePath: "data/weekboard.db",
		},
	}
}

// Load reads a YAML config file, falling back to defaults when the file does
// not exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Listen == "" {
		cfg.Listen = Default().Listen
	}
	if cfg.DataDir == "" {
		cfg.DataDir = Default().DataDir
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendDir
	}
	return cfg, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekStartDay resolves the configured week start, defaulting to Monday.
func (c *Config) WeekStartDay() time.Weekday {
	if d, ok := weekdays[strings.ToLower(strings.TrimSpace(c.WeekStart))]; ok {
		return d
	}
	return time.Monday
}
