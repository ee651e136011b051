package timeline

import (
	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/models"
)

// GestureKind is the bar edge being dragged
type GestureKind int

const (
	GestureMove GestureKind = iota
	GestureResizeStart
	GestureResizeEnd
)

func (k GestureKind) String() string {
	switch k {
	case GestureResizeStart:
		return "resize start"
	case GestureResizeEnd:
		return "resize end"
	}
	return "move"
}

// Gesture is an in-progress drag. Delta accumulates pointer movement in
// pixels; only the final delta is ever applied to the stored task.
type Gesture struct {
	Kind  GestureKind
	Task  models.Task
	Delta int
}

// BeginGesture starts a gesture on task
func BeginGesture(kind GestureKind, task models.Task) Gesture {
	return Gesture{Kind: kind, Task: task}
}

// Nudge returns the gesture moved by px more pixels
func (g Gesture) Nudge(px int) Gesture {
	g.Delta += px
	return g
}

// Apply resolves the gesture against the layout. The returned task carries
// the new dates when applied is true and is the unchanged input otherwise.
func (l *Layout) Apply(g Gesture) (task models.Task, applied bool, err error) {
	switch g.Kind {
	case GestureResizeStart:
		return l.ResizeStart(g.Task, g.Delta)
	case GestureResizeEnd:
		return l.ResizeEnd(g.Task, g.Delta)
	}
	return l.Move(g.Task, g.Delta)
}

// Move shifts the whole bar by delta pixels, keeping its duration in days.
func (l *Layout) Move(t models.Task, delta int) (models.Task, bool, error) {
	if err := checkSpan(l.cal, t); err != nil {
		return t, false, err
	}

	start := l.shift(t.StartDate, delta)
	if l.cal.IsSamePeriod(start, t.StartDate, calendar.Day) {
		return t, false, nil
	}

	days := l.cal.DiffInDays(t.EndDate, t.StartDate)
	moved := t
	moved.StartDate = start
	moved.EndDate = l.cal.AddPeriods(start, days, calendar.Day)
	return moved, true, nil
}

// ResizeStart drags the leading edge. Candidates on or after the current
// end date are rejected.
func (l *Layout) ResizeStart(t models.Task, delta int) (models.Task, bool, error) {
	if err := checkSpan(l.cal, t); err != nil {
		return t, false, err
	}

	start := l.shift(t.StartDate, delta)
	if l.cal.IsSamePeriod(start, t.StartDate, calendar.Day) {
		return t, false, nil
	}
	if l.cal.DiffInDays(t.EndDate, start) <= 0 {
		return t, false, nil
	}

	resized := t
	resized.StartDate = start
	return resized, true, nil
}

// ResizeEnd drags the trailing edge. Candidates on or before the current
// start date are rejected.
func (l *Layout) ResizeEnd(t models.Task, delta int) (models.Task, bool, error) {
	if err := checkSpan(l.cal, t); err != nil {
		return t, false, err
	}

	end := l.shift(t.EndDate, delta)
	if l.cal.IsSamePeriod(end, t.EndDate, calendar.Day) {
		return t, false, nil
	}
	if l.cal.DiffInDays(end, t.StartDate) <= 0 {
		return t, false, nil
	}

	resized := t
	resized.EndDate = end
	return resized, true, nil
}
