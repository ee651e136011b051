package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateRange is returned when a task ends before it starts
var ErrInvalidDateRange = errors.New("invalid date range: end date is before start date")

// DefaultTaskColor is used for bars of tasks without their own color
const DefaultTaskColor = "#7aa2f7"

// Project represents a scheduling project
type Project struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Group represents a named, colored bucket of tasks inside one project
type Group struct {
	ID        string
	ProjectID string
	Name      string
	Color     string
	Expanded  bool
	CreatedAt time.Time
}

// Task represents a single schedulable unit of work
type Task struct {
	ID        string
	ProjectID string
	GroupID   *string // nil if ungrouped
	Title     string
	StartDate time.Time
	EndDate   time.Time
	Progress  *int // nil if progress is not tracked
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the task's date range and progress
func (t Task) Validate() error {
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("task %q: %w", t.Title, ErrInvalidDateRange)
	}
	if t.Progress != nil && (*t.Progress < 0 || *t.Progress > 100) {
		return fmt.Errorf("task %q: progress %d out of range 0-100", t.Title, *t.Progress)
	}
	return nil
}

// DisplayColor returns the task color or fallback when none is set
func (t Task) DisplayColor(fallback string) string {
	if t.Color != "" {
		return t.Color
	}
	if fallback != "" {
		return fallback
	}
	return DefaultTaskColor
}

// InGroup reports whether the task belongs to the group with the given ID
func (t Task) InGroup(groupID string) bool {
	return t.GroupID != nil && *t.GroupID == groupID
}
