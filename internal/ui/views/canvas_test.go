package views

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/tgienger/gantt/internal/ui/styles"
)

func TestGrid(t *testing.T) {
	g := newGrid(600, 10)
	assert.Equal(t, 60, g.cols)

	assert.Equal(t, 59, g.col(0), "offset 0 is the rightmost column")
	assert.Equal(t, 0, g.col(599))
	assert.Equal(t, 0, g.col(5000), "clamped")

	// a two-day daily bar starting on the third cell
	left, right := g.span(120, 118)
	assert.Equal(t, 47, right)
	assert.Equal(t, 36, left)

	assert.Equal(t, 1, newGrid(0, 10).cols)
	assert.Equal(t, 60, newGrid(60, 0).cols, "non-positive scale falls back to one pixel per column")
}

func TestStripText(t *testing.T) {
	s := newStrip(10)
	s.text(0, 9, "abcd", paintHeader, false)
	assert.Equal(t, "   abcd   ", s.plain(0, 10))

	s = newStrip(10)
	s.text(2, 7, "xy", paintMonth, true)
	assert.Equal(t, "      xy  ", s.plain(0, 10))

	s = newStrip(4)
	s.text(0, 3, "truncated", paintHeader, false)
	assert.Equal(t, "trun", s.plain(0, 4))

	s = newStrip(4)
	s.text(0, 3, "漢字", paintHeader, false)
	assert.Equal(t, "漢字", s.plain(0, 4), "double-width runes take two columns")
}

func TestStripFill(t *testing.T) {
	s := newStrip(6)
	s.fill(-2, 2, '█', paintBar, "#ffffff")
	s.fill(5, 9, '▒', paintBar, "#ffffff")
	assert.Equal(t, "███  ▒", s.plain(0, 6))
	assert.Equal(t, "█  ", s.plain(2, 5))

	s.shade(1, 1)
	assert.True(t, s[1].weekend)
	assert.False(t, s[0].weekend)
}

func TestCellStyleWeekend(t *testing.T) {
	st := styles.NewStyles()
	st.Weekend = lipgloss.NewStyle().Background(lipgloss.Color("#112233"))

	for _, p := range []paint{paintEmpty, paintHeader, paintBar} {
		got := cellStyle(st, cell{r: ' ', paint: p, color: "#7aa2f7", weekend: true})
		assert.Equal(t, lipgloss.Color("#112233"), got.GetBackground(), "paint %d", p)
	}

	weekday := cellStyle(st, cell{r: ' ', paint: paintEmpty})
	assert.NotEqual(t, lipgloss.Color("#112233"), weekday.GetBackground())
}
