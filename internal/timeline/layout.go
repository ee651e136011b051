package timeline

import (
	"math"
	"time"

	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/models"
)

// BorderInset is the width in pixels reserved for bar borders
const BorderInset = 2

// Bar is a task's horizontal geometry. Offset is measured from the leading
// (right) edge of the timeline and grows leftward.
type Bar struct {
	Offset int
	Width  int
}

// End returns the offset just past the bar's trailing edge
func (b Bar) End() int {
	return b.Offset + b.Width
}

// Marker locates an instant inside the grid
type Marker struct {
	Offset int
	Cell   int
}

// Layout is a Config together with its cell sequence
type Layout struct {
	Config
	cal   calendar.Calendar
	cells []time.Time
}

// Cells returns the period starts of the grid columns. Callers must not
// modify the returned slice.
func (l *Layout) Cells() []time.Time {
	return l.cells
}

// Width returns the total grid width in pixels
func (l *Layout) Width() int {
	return len(l.cells) * l.CellWidth
}

// RowOffset returns the vertical offset of a row slot
func (l *Layout) RowOffset(rowIndex int) int {
	return rowIndex * l.RowHeight
}

// Position maps a task's date span to pixels. Daily bars cover every day
// from start to end inclusive; weekly bars cover every week the task
// touches and are never narrower than one cell.
func (l *Layout) Position(t models.Task) (Bar, error) {
	if err := checkSpan(l.cal, t); err != nil {
		return Bar{}, err
	}

	var from, cells int
	switch l.View {
	case Weekly:
		from = l.cal.DiffInPeriods(t.StartDate, l.StartDate, calendar.Week)
		cells = max(1, l.cal.DiffInPeriods(t.EndDate, t.StartDate, calendar.Week)+1)
	default:
		from = l.cal.DiffInDays(t.StartDate, l.StartDate)
		cells = l.cal.DiffInDays(t.EndDate, t.StartDate) + 1
	}

	return Bar{
		Offset: from * l.CellWidth,
		Width:  cells*l.CellWidth - BorderInset,
	}, nil
}

// DateAt maps a pixel offset back to the period start of the cell nearest
// to it, clamped to the grid.
func (l *Layout) DateAt(offset int) time.Time {
	return l.cells[l.CellAt(offset)]
}

// CellAt returns the index of the cell nearest to offset, clamped to the grid
func (l *Layout) CellAt(offset int) int {
	idx := int(math.Round(float64(offset) / float64(l.CellWidth)))
	return min(max(idx, 0), len(l.cells)-1)
}

// Today locates now inside the grid. The marker sits in the middle of the
// current day; in the weekly view it is placed on that day's seventh of
// the week cell. The second result is false when now is outside the grid.
func (l *Layout) Today(now time.Time) (Marker, bool) {
	unit := l.View.Unit()
	idx := l.cal.DiffInPeriods(now, l.cells[0], unit)
	if idx < 0 || idx >= len(l.cells) {
		return Marker{}, false
	}

	offset := idx * l.CellWidth
	if l.View == Weekly {
		dayInWeek := l.cal.DiffInDays(now, l.cells[idx])
		offset += (dayInWeek*l.CellWidth + l.CellWidth/2) / 7
	} else {
		offset += l.CellWidth / 2
	}
	return Marker{Offset: offset, Cell: idx}, true
}

// shift moves d by whole periods so that it lands in the cell nearest to
// its own cell offset plus delta
func (l *Layout) shift(d time.Time, delta int) time.Time {
	unit := l.View.Unit()
	from := l.cal.DiffInPeriods(d, l.cells[0], unit) * l.CellWidth
	target := l.DateAt(from + delta)
	return l.cal.AddPeriods(d, l.cal.DiffInPeriods(target, d, unit), unit)
}
