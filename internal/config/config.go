// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/timeline"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	UI       UIConfig       `yaml:"ui"`
	Calendar CalendarConfig `yaml:"calendar"`
	Timeline TimelineConfig `yaml:"timeline"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	DefaultView   string `yaml:"default_view"` // "daily" or "weekly"
	PersianDigits bool   `yaml:"persian_digits"`
}

// CalendarConfig selects the local calendar and week layout.
type CalendarConfig struct {
	System    string   `yaml:"system"` // "jalali", "hijri" or "gregorian"
	WeekStart string   `yaml:"week_start"`
	Weekend   []string `yaml:"weekend"`
}

// TimelineConfig holds the chart geometry in pixels.
type TimelineConfig struct {
	DailyCellWidth  int `yaml:"daily_cell_width"`
	WeeklyCellWidth int `yaml:"weekly_cell_width"`
	RowHeight       int `yaml:"row_height"`

	// PixelsPerColumn scales pixel geometry down to terminal columns
	PixelsPerColumn int `yaml:"pixels_per_column"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Path to the sqlite file; empty uses the XDG data directory
	Path string `yaml:"path,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// File receives debug logs; empty disables logging
	File string `yaml:"file,omitempty"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	d := timeline.DefaultDimensions
	return &Config{
		UI: UIConfig{
			DefaultView: timeline.Daily.String(),
		},
		Calendar: CalendarConfig{
			System:    calendar.Jalali.String(),
			WeekStart: "saturday",
			Weekend:   []string{"thursday", "friday"},
		},
		Timeline: TimelineConfig{
			DailyCellWidth:  d.DailyCellWidth,
			WeeklyCellWidth: d.WeeklyCellWidth,
			RowHeight:       d.RowHeight,
			PixelsPerColumn: 10,
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(homeDir, ".config")
	}

	configDir := filepath.Join(configHome, "gantt")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the default config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration at path. A missing file yields the
// defaults; unknown calendar, weekday or view names are errors.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to path.
func SaveTo(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every named value and that geometry is positive.
func (c *Config) Validate() error {
	if _, err := c.LocalCalendar(); err != nil {
		return err
	}
	if _, err := c.DefaultView(); err != nil {
		return err
	}

	t := c.Timeline
	if t.DailyCellWidth <= 0 || t.WeeklyCellWidth <= 0 || t.RowHeight <= 0 || t.PixelsPerColumn <= 0 {
		return errors.New("timeline sizes must be positive")
	}
	return nil
}

// LocalCalendar builds the calendar described by the config, in the local zone.
func (c *Config) LocalCalendar() (calendar.Calendar, error) {
	cal := calendar.Default()
	cal.Location = time.Local
	cal.PersianDigits = c.UI.PersianDigits

	sys, err := calendar.ParseSystem(c.Calendar.System)
	if err != nil {
		return cal, err
	}
	cal.System = sys

	if c.Calendar.WeekStart != "" {
		if cal.WeekStart, err = calendar.ParseWeekday(c.Calendar.WeekStart); err != nil {
			return cal, err
		}
	}

	weekend := make([]time.Weekday, 0, len(c.Calendar.Weekend))
	for _, name := range c.Calendar.Weekend {
		wd, err := calendar.ParseWeekday(name)
		if err != nil {
			return cal, err
		}
		weekend = append(weekend, wd)
	}
	cal.Weekend = weekend

	return cal, nil
}

// Dimensions returns the timeline geometry.
func (c *Config) Dimensions() timeline.Dimensions {
	return timeline.Dimensions{
		DailyCellWidth:  c.Timeline.DailyCellWidth,
		WeeklyCellWidth: c.Timeline.WeeklyCellWidth,
		RowHeight:       c.Timeline.RowHeight,
	}
}

// DefaultView returns the view the chart opens in.
func (c *Config) DefaultView() (timeline.View, error) {
	return timeline.ParseView(c.UI.DefaultView)
}
