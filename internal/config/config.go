// Package config loads user settings and persists per-directory bookmarks.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kk-code-lab/dpane/internal/panel"
	"gopkg.in/yaml.v3"
)

const (
	appName = "dpane"

	defaultDrivePoll = 3 * time.Second
	minDrivePoll     = 500 * time.Millisecond
)

// Config is the on-disk settings file.
type Config struct {
	ShowHidden        bool          `yaml:"show_hidden"`
	SortColumn        string        `yaml:"sort_column"`
	SortDescending    bool          `yaml:"sort_descending"`
	DrivePollInterval time.Duration `yaml:"drive_poll_interval"`
	LogFile           string        `yaml:"log_file,omitempty"`
	Watch             bool          `yaml:"watch"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		SortColumn:        "name",
		DrivePollInterval: defaultDrivePoll,
		Watch:             true,
	}
}

// Dir returns the per-user configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// DefaultPath returns the settings file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values and clamps the poll interval.
func (c *Config) Validate() error {
	if _, err := ParseSortColumn(c.SortColumn); err != nil {
		return err
	}
	if c.DrivePollInterval < minDrivePoll {
		c.DrivePollInterval = minDrivePoll
	}
	return nil
}

// SortOrder returns the initial listing order.
func (c Config) SortOrder() panel.SortOrder {
	col, err := ParseSortColumn(c.SortColumn)
	if err != nil {
		col = panel.ColumnName
	}
	return panel.SortOrder{Column: col, Descending: c.SortDescending}
}

// ParseSortColumn maps a column name ("name", "ext", "size", "date") to its
// column. Empty means name.
func ParseSortColumn(name string) (panel.Column, error) {
	if name == "" {
		return panel.ColumnName, nil
	}
	for col := panel.Column(0); col < panel.NumColumns; col++ {
		if strings.EqualFold(col.String(), name) {
			return col, nil
		}
	}
	return panel.ColumnName, fmt.Errorf("unknown sort column %q", name)
}
