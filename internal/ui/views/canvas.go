package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tgienger/gantt/internal/ui/styles"
)

// paint is what occupies a chart column
type paint uint8

const (
	paintEmpty paint = iota
	paintHeader
	paintMonth
	paintToday
	paintTodayHeader
	paintBar
	paintPreview
	paintSummary
)

// continuation marks the second column of a double-width rune
const continuation = rune(-1)

type cell struct {
	r       rune
	paint   paint
	color   string
	weekend bool
}

// grid maps pixel offsets, measured from the right edge of the timeline,
// onto terminal columns counted from the left.
type grid struct {
	cols int
	ppc  int
}

func newGrid(widthPx, pixelsPerColumn int) grid {
	ppc := max(pixelsPerColumn, 1)
	return grid{cols: max((widthPx+ppc-1)/ppc, 1), ppc: ppc}
}

// col returns the column holding the pixel at offset
func (g grid) col(offset int) int {
	return clamp(g.cols-1-offset/g.ppc, 0, g.cols-1)
}

// span returns the columns covering width pixels starting at offset
func (g grid) span(offset, width int) (left, right int) {
	return g.col(offset + max(width, 1) - 1), g.col(offset)
}

// strip is one painted line of the chart
type strip []cell

func newStrip(n int) strip {
	s := make(strip, n)
	for i := range s {
		s[i].r = ' '
	}
	return s
}

func (s strip) fill(left, right int, r rune, p paint, color string) {
	for i := max(left, 0); i <= right && i < len(s); i++ {
		s[i].r = r
		s[i].paint = p
		s[i].color = color
	}
}

func (s strip) shade(left, right int) {
	for i := max(left, 0); i <= right && i < len(s); i++ {
		s[i].weekend = true
	}
}

// text writes label into columns left..right, truncated to fit. Right
// aligned text hugs the right edge, otherwise it is centered.
func (s strip) text(left, right int, label string, p paint, alignRight bool) {
	if left < 0 {
		left = 0
	}
	if right >= len(s) {
		right = len(s) - 1
	}
	room := right - left + 1
	if room <= 0 || label == "" {
		return
	}

	label = runewidth.Truncate(label, room, "")
	w := runewidth.StringWidth(label)
	start := left + (room-w)/2
	if alignRight {
		start = right - w + 1
	}

	pos := start
	for _, r := range label {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		s[pos].r = r
		s[pos].paint = p
		if rw == 2 && pos+1 < len(s) {
			s[pos+1].r = continuation
			s[pos+1].paint = p
		}
		pos += rw
	}
}

// render draws columns from..to-1, merging equally styled runs
func (s strip) render(st *styles.Styles, from, to int) string {
	from = max(from, 0)
	to = min(to, len(s))

	var b strings.Builder
	var run strings.Builder
	var runStyle lipgloss.Style
	var last cell
	started := false
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}
	}

	for i := from; i < to; i++ {
		c := s[i]
		if c.r == continuation {
			continue
		}
		if !started || c.paint != last.paint || c.color != last.color || c.weekend != last.weekend {
			flush()
			runStyle = cellStyle(st, c)
			last = c
			started = true
		}
		run.WriteRune(c.r)
	}
	flush()
	return b.String()
}

func cellStyle(st *styles.Styles, c cell) lipgloss.Style {
	var s lipgloss.Style
	switch c.paint {
	case paintHeader:
		s = st.Header
	case paintMonth:
		s = st.HeaderMonth
	case paintToday:
		s = st.TodayLine
	case paintTodayHeader:
		return st.HeaderToday
	case paintBar, paintSummary:
		s = styles.Bar(c.color)
	case paintPreview:
		return styles.Preview(c.color)
	default:
		s = st.Track
	}
	if c.weekend {
		s = s.Background(st.Weekend.GetBackground())
	}
	return s
}

// plain returns the runes of columns from..to-1 without styling
func (s strip) plain(from, to int) string {
	var b strings.Builder
	for i := max(from, 0); i < min(to, len(s)); i++ {
		if s[i].r != continuation {
			b.WriteRune(s[i].r)
		}
	}
	return b.String()
}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
