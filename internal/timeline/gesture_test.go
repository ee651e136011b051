package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove_Daily(t *testing.T) {
	e := testEngine()
	l := dailyLayout(e, day(2024, 1, 1), endOfDay(2024, 1, 14))
	orig := task("t", day(2024, 1, 3), day(2024, 1, 5))

	tests := []struct {
		name      string
		delta     int
		wantApply bool
		wantStart int
		wantEnd   int
	}{
		{"one cell later", 60, true, 4, 6},
		{"two cells earlier", -120, true, 1, 3},
		{"less than half a cell", 20, false, 3, 5},
		{"clamped at the leading edge", -150, true, 1, 3},
		{"clamped at the trailing edge", 6000, true, 14, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied, err := l.Move(orig, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.wantApply, applied)
			assert.Equal(t, day(2024, 1, tt.wantStart), got.StartDate)
			assert.Equal(t, day(2024, 1, tt.wantEnd), got.EndDate)
			assert.Equal(t, 2, e.Calendar.DiffInDays(got.EndDate, got.StartDate), "duration preserved")
		})
	}
}

func TestMove_WeeklyKeepsWeekdayAndDuration(t *testing.T) {
	e := testEngine()
	l := weeklyLayout(e, day(2024, 1, 6), endOfDay(2024, 2, 2))
	orig := task("t", day(2024, 1, 10), day(2024, 1, 15))

	got, applied, err := l.Move(orig, 120)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, day(2024, 1, 17), got.StartDate)
	assert.Equal(t, day(2024, 1, 22), got.EndDate)

	same, applied, err := l.Move(orig, 50)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, orig, same)
}

func TestResizeStart(t *testing.T) {
	e := testEngine()
	l := dailyLayout(e, day(2024, 1, 1), endOfDay(2024, 1, 14))
	orig := task("t", day(2024, 1, 3), day(2024, 1, 5))

	got, applied, err := l.ResizeStart(orig, 60)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, day(2024, 1, 4), got.StartDate)
	assert.Equal(t, orig.EndDate, got.EndDate)

	got, applied, err = l.ResizeStart(orig, -60)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, day(2024, 1, 2), got.StartDate)

	// on or after the end date: rejected, nothing changes
	for _, delta := range []int{120, 180, 600} {
		got, applied, err = l.ResizeStart(orig, delta)
		require.NoError(t, err)
		assert.False(t, applied, "delta %d", delta)
		assert.Equal(t, orig, got)
	}
}

func TestResizeEnd(t *testing.T) {
	e := testEngine()
	l := dailyLayout(e, day(2024, 1, 1), endOfDay(2024, 1, 14))
	orig := task("t", day(2024, 1, 3), day(2024, 1, 5))

	got, applied, err := l.ResizeEnd(orig, 60)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, orig.StartDate, got.StartDate)
	assert.Equal(t, day(2024, 1, 6), got.EndDate)

	got, applied, err = l.ResizeEnd(orig, -60)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, day(2024, 1, 4), got.EndDate)

	for _, delta := range []int{-120, -180, -600} {
		got, applied, err = l.ResizeEnd(orig, delta)
		require.NoError(t, err)
		assert.False(t, applied, "delta %d", delta)
		assert.Equal(t, orig, got)
	}
}

func TestGesture(t *testing.T) {
	e := testEngine()
	l := dailyLayout(e, day(2024, 1, 1), endOfDay(2024, 1, 14))
	orig := task("t", day(2024, 1, 3), day(2024, 1, 5))

	g := BeginGesture(GestureResizeEnd, orig).Nudge(60).Nudge(60).Nudge(-60)
	assert.Equal(t, 60, g.Delta)
	assert.Equal(t, orig, g.Task, "nudging never touches the task")

	got, applied, err := l.Apply(g)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, day(2024, 1, 6), got.EndDate)

	got, applied, err = l.Apply(BeginGesture(GestureMove, orig).Nudge(-60))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, day(2024, 1, 2), got.StartDate)

	got, applied, err = l.Apply(BeginGesture(GestureResizeStart, orig).Nudge(600))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, orig, got)
}

func TestGesture_InvalidTask(t *testing.T) {
	e := testEngine()
	l := dailyLayout(e, day(2024, 1, 1), endOfDay(2024, 1, 14))
	bad := task("bad", day(2024, 1, 5), day(2024, 1, 3))

	for _, kind := range []GestureKind{GestureMove, GestureResizeStart, GestureResizeEnd} {
		got, applied, err := l.Apply(BeginGesture(kind, bad).Nudge(60))
		assert.ErrorIs(t, err, ErrInvalidDateRange, kind.String())
		assert.False(t, applied)
		assert.Equal(t, bad, got)
	}
}
