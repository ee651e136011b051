package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/timeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cal, err := cfg.LocalCalendar()
	require.NoError(t, err)
	assert.Equal(t, calendar.Jalali, cal.System)
	assert.Equal(t, time.Saturday, cal.WeekStart)
	assert.Equal(t, []time.Weekday{time.Thursday, time.Friday}, cal.Weekend)
	assert.Equal(t, timeline.DefaultDimensions, cfg.Dimensions())
}

func TestLoadFrom_Overrides(t *testing.T) {
	path := writeConfig(t, `
ui:
  default_view: weekly
  persian_digits: true
calendar:
  system: gregorian
  week_start: mon
  weekend: [saturday, sunday]
timeline:
  daily_cell_width: 40
database:
  path: /tmp/gantt-test.db
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	view, err := cfg.DefaultView()
	require.NoError(t, err)
	assert.Equal(t, timeline.Weekly, view)

	cal, err := cfg.LocalCalendar()
	require.NoError(t, err)
	assert.Equal(t, calendar.Gregorian, cal.System)
	assert.Equal(t, time.Monday, cal.WeekStart)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cal.Weekend)
	assert.True(t, cal.PersianDigits)

	dims := cfg.Dimensions()
	assert.Equal(t, 40, dims.DailyCellWidth)
	assert.Equal(t, 120, dims.WeeklyCellWidth, "unset keys keep their default")
	assert.Equal(t, 10, cfg.Timeline.PixelsPerColumn)
	assert.Equal(t, "/tmp/gantt-test.db", cfg.Database.Path)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown calendar", "calendar:\n  system: mayan\n"},
		{"unknown weekday", "calendar:\n  weekend: [someday]\n"},
		{"unknown view", "ui:\n  default_view: monthly\n"},
		{"zero width", "timeline:\n  weekly_cell_width: 0\n"},
		{"not yaml", "ui: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.DefaultView = "weekly"
	cfg.Calendar.System = "hijri"

	require.NoError(t, SaveTo(cfg, path))

	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
