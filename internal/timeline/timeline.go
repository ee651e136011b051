// Package timeline lays tasks out on a right-to-left Gantt grid.
//
// Every render pass recomputes, in order: rows (Organize), the visible range
// (Engine.Compute), the cell sequence (Engine.Layout) and the bar geometry
// (Layout.Position). Nothing here performs I/O or keeps state between passes.
package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/models"
)

// ErrInvalidDateRange is returned for tasks that end before they start
var ErrInvalidDateRange = models.ErrInvalidDateRange

// View is the grid granularity
type View int

const (
	Daily View = iota
	Weekly
)

func (v View) String() string {
	if v == Weekly {
		return "weekly"
	}
	return "daily"
}

// Unit returns the calendar period covered by one grid cell
func (v View) Unit() calendar.Unit {
	if v == Weekly {
		return calendar.Week
	}
	return calendar.Day
}

// Toggle switches between the daily and weekly views
func (v View) Toggle() View {
	if v == Weekly {
		return Daily
	}
	return Weekly
}

// ParseView parses "daily" or "weekly"
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	}
	return Daily, fmt.Errorf("unknown view %q", s)
}

// Dimensions are the presentation constants carried by every Config
type Dimensions struct {
	DailyCellWidth  int
	WeeklyCellWidth int
	RowHeight       int
}

// DefaultDimensions matches the reference layout: 60px days, 120px weeks, 50px rows
var DefaultDimensions = Dimensions{
	DailyCellWidth:  60,
	WeeklyCellWidth: 120,
	RowHeight:       50,
}

// CellWidth returns the cell width for a view
func (d Dimensions) CellWidth(v View) int {
	if v == Weekly {
		return d.WeeklyCellWidth
	}
	return d.DailyCellWidth
}

// Config is the visible range and grid geometry for one render pass.
// It is a value: recompute it whenever the task set or view changes.
type Config struct {
	View      View
	StartDate time.Time
	EndDate   time.Time
	CellWidth int
	RowHeight int
}

// Engine computes configs and layouts with one calendar and set of dimensions
type Engine struct {
	Calendar   calendar.Calendar
	Dimensions Dimensions
}

// NewEngine creates an engine with the default dimensions
func NewEngine(cal calendar.Calendar) *Engine {
	return &Engine{Calendar: cal, Dimensions: DefaultDimensions}
}

// Compute derives the padded visible range for tasks. An empty task list
// yields a one-day range around now; otherwise the range spans every task
// plus one week on each side, snapped outward to week boundaries in the
// weekly view.
func (e *Engine) Compute(tasks []models.Task, view View, now time.Time) (Config, error) {
	cal := e.Calendar
	cfg := Config{
		View:      view,
		CellWidth: e.Dimensions.CellWidth(view),
		RowHeight: e.Dimensions.RowHeight,
	}

	if len(tasks) == 0 {
		cfg.StartDate = cal.StartOfPeriod(now, calendar.Day)
		cfg.EndDate = cal.EndOfPeriod(now, calendar.Day)
		return cfg, nil
	}

	var rawStart, rawEnd time.Time
	for i, t := range tasks {
		if err := checkSpan(cal, t); err != nil {
			return Config{}, err
		}
		if i == 0 || t.StartDate.Before(rawStart) {
			rawStart = t.StartDate
		}
		if i == 0 || t.EndDate.After(rawEnd) {
			rawEnd = t.EndDate
		}
	}

	// one week of padding on both sides in either view
	before := cal.AddPeriods(rawStart, -1, calendar.Week)
	after := cal.AddPeriods(rawEnd, 1, calendar.Week)
	unit := view.Unit()
	cfg.StartDate = cal.StartOfPeriod(before, unit)
	cfg.EndDate = cal.EndOfPeriod(after, unit)
	return cfg, nil
}

// Cells enumerates the period starts covering [StartDate, EndDate]: one
// entry per grid column, never empty.
func (e *Engine) Cells(cfg Config) []time.Time {
	cal := e.Calendar
	unit := cfg.View.Unit()
	first := cal.StartOfPeriod(cfg.StartDate, unit)

	n := cal.DiffInPeriods(cfg.EndDate, first, unit) + 1
	if n < 1 {
		n = 1
	}
	cells := make([]time.Time, 0, n)
	for i := 0; ; i++ {
		d := cal.StartOfPeriod(cal.AddPeriods(first, i, unit), unit)
		if d.After(cfg.EndDate) {
			break
		}
		cells = append(cells, d)
	}
	if len(cells) == 0 {
		cells = append(cells, first)
	}
	return cells
}

// Layout binds cfg to its enumerated cells so the forward and inverse
// mappings share one sequence.
func (e *Engine) Layout(cfg Config) *Layout {
	return &Layout{
		Config: cfg,
		cal:    e.Calendar,
		cells:  e.Cells(cfg),
	}
}

func checkSpan(cal calendar.Calendar, t models.Task) error {
	if err := cal.Check(t.StartDate); err != nil {
		return fmt.Errorf("task %q start: %w", t.Title, err)
	}
	if err := cal.Check(t.EndDate); err != nil {
		return fmt.Errorf("task %q end: %w", t.Title, err)
	}
	if cal.DiffInDays(t.EndDate, t.StartDate) < 0 {
		return fmt.Errorf("task %q: %w", t.Title, ErrInvalidDateRange)
	}
	return nil
}
