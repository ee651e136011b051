package views

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/db"
	"github.com/tgienger/gantt/internal/models"
	"github.com/tgienger/gantt/internal/timeline"
	"github.com/tgienger/gantt/internal/ui/keys"
	"github.com/tgienger/gantt/internal/ui/styles"
)

// ChartOptions configure a GanttView
type ChartOptions struct {
	Calendar        calendar.Calendar
	Dimensions      timeline.Dimensions
	View            timeline.View
	PixelsPerColumn int

	// ForceView keeps View even when another view was saved earlier
	ForceView bool

	// Now defaults to time.Now
	Now func() time.Time
}

// BackToProjects signals to go back to project list
type BackToProjects struct{}

// ViewChanged is sent after the chart switches between daily and weekly
type ViewChanged struct {
	View timeline.View
}

// TaskCommitted reports the outcome of writing a task back to the store.
// On error the chart reloads the stored tasks, dropping the local edit.
type TaskCommitted struct {
	Task models.Task
	Err  error
}

type chartLoadedMsg struct {
	tasks  []models.Task
	groups []models.Group
}

type chartFailedMsg struct {
	err error
}

type chartSavedMsg struct {
	done string
	err  error
}

// GanttView draws a project's tasks on a right-to-left timeline
type GanttView struct {
	db      *db.DB
	project models.Project
	engine  *timeline.Engine
	cal     calendar.Calendar
	view    timeline.View
	ppc     int
	now     func() time.Time
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	tasks  []models.Task
	groups []models.Group
	rows   []timeline.Row
	layout *timeline.Layout
	grid   grid
	loaded bool

	cursor  int
	scrollY int
	scrollX int // columns scrolled away from the right (start) edge

	// Active drag, nil when idle
	gesture *timeline.Gesture

	taskForm  *taskForm
	groupForm *groupForm

	confirmingDelete bool
	deleteTarget     timeline.Row

	status    string
	statusErr bool

	showHelpPopup bool
}

// NewGanttView creates a chart for project
func NewGanttView(database *db.DB, project models.Project, opts ChartOptions) *GanttView {
	engine := timeline.NewEngine(opts.Calendar)
	if opts.Dimensions != (timeline.Dimensions{}) {
		engine.Dimensions = opts.Dimensions
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &GanttView{
		db:      database,
		project: project,
		engine:  engine,
		cal:     opts.Calendar,
		view:    opts.View,
		ppc:     max(opts.PixelsPerColumn, 1),
		now:     now,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		grid:    newGrid(0, 1),
	}
}

// Init loads the project's tasks and groups
func (v *GanttView) Init() tea.Cmd {
	return v.load
}

func (v *GanttView) load() tea.Msg {
	tasks, err := v.db.ListTasks(v.project.ID)
	if err != nil {
		return chartFailedMsg{err: err}
	}
	groups, err := v.db.ListGroups(v.project.ID)
	if err != nil {
		return chartFailedMsg{err: err}
	}
	return chartLoadedMsg{tasks: tasks, groups: groups}
}

// Update handles messages
func (v *GanttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.scrollX = clamp(v.scrollX, 0, v.maxScrollX())
		v.ensureVisible()
		return v, nil

	case chartLoadedMsg:
		first := !v.loaded
		v.tasks = msg.tasks
		v.groups = msg.groups
		v.loaded = true
		v.rebuild()
		if first {
			v.scrollToToday()
		}
		return v, nil

	case chartFailedMsg:
		log.Printf("load project %s: %v", v.project.ID, msg.err)
		v.loaded = true
		v.setError(msg.err)
		return v, nil

	case TaskCommitted:
		if msg.Err != nil {
			log.Printf("commit task %s: %v", msg.Task.ID, msg.Err)
			v.setError(fmt.Errorf("could not save %q: %w", msg.Task.Title, msg.Err))
		} else {
			v.setStatus(fmt.Sprintf("saved %q: %s → %s", msg.Task.Title,
				v.cal.FormatLocal(msg.Task.StartDate), v.cal.FormatLocal(msg.Task.EndDate)))
		}
		return v, v.load

	case chartSavedMsg:
		if msg.err != nil {
			log.Printf("save in project %s: %v", v.project.ID, msg.err)
			v.setError(msg.err)
		} else {
			v.setStatus(msg.done)
		}
		return v, v.load

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.taskForm != nil {
			return v.updateTaskForm(msg)
		}

		if v.groupForm != nil {
			return v.updateGroupForm(msg)
		}

		if v.gesture != nil {
			return v.updateGesture(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

// rebuild recomputes rows, grid config and column mapping from the loaded data
func (v *GanttView) rebuild() {
	v.rows = timeline.Collapse(timeline.Organize(v.tasks, v.groups))
	v.cursor = clamp(v.cursor, 0, max(len(v.rows)-1, 0))

	cfg, err := v.engine.Compute(v.tasks, v.view, v.now())
	if err != nil {
		log.Printf("compute timeline for project %s: %v", v.project.ID, err)
		v.layout = nil
		v.setError(err)
		return
	}

	v.layout = v.engine.Layout(cfg)
	v.grid = newGrid(v.layout.Width(), v.ppc)
	v.scrollX = clamp(v.scrollX, 0, v.maxScrollX())
	v.ensureVisible()
}

func (v *GanttView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.rows)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	// time runs right to left: left scrolls towards later dates
	case key.Matches(msg, v.keys.Left):
		v.scrollX = clamp(v.scrollX+v.cellColumns(), 0, v.maxScrollX())
		return v, nil

	case key.Matches(msg, v.keys.Right):
		v.scrollX = clamp(v.scrollX-v.cellColumns(), 0, v.maxScrollX())
		return v, nil

	case key.Matches(msg, v.keys.ToggleView):
		v.view = v.view.Toggle()
		v.rebuild()
		v.scrollToToday()
		view := v.view
		return v, func() tea.Msg { return ViewChanged{View: view} }

	case key.Matches(msg, v.keys.Today):
		v.scrollToToday()
		return v, nil

	case key.Matches(msg, v.keys.Move):
		return v, v.beginGesture(timeline.GestureMove)

	case key.Matches(msg, v.keys.ResizeStart):
		return v, v.beginGesture(timeline.GestureResizeStart)

	case key.Matches(msg, v.keys.ResizeEnd):
		return v, v.beginGesture(timeline.GestureResizeEnd)

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.NewGroup):
		v.groupForm = newGroupForm(v.styles, v.keys, nil)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		switch r := v.selectedRow().(type) {
		case timeline.TaskRow:
			v.taskForm = newTaskForm(v.styles, v.keys, v.cal, v.groups, r.Task, false)
			return v, textinput.Blink
		case timeline.GroupRow:
			g := r.Group
			v.groupForm = newGroupForm(v.styles, v.keys, &g)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if r := v.selectedRow(); r != nil {
			v.confirmingDelete = true
			v.deleteTarget = r
		}
		return v, nil

	case key.Matches(msg, v.keys.Collapse):
		if r, ok := v.selectedRow().(timeline.GroupRow); ok {
			return v, v.setExpanded(r.Group, !r.Group.Expanded)
		}
		return v, nil
	}

	return v, nil
}

func (v *GanttView) beginGesture(kind timeline.GestureKind) tea.Cmd {
	r, ok := v.selectedRow().(timeline.TaskRow)
	if !ok || v.layout == nil {
		return nil
	}
	g := timeline.BeginGesture(kind, r.Task)
	v.gesture = &g
	v.setStatus(fmt.Sprintf("%s %q: ←/→ to shift, ↵ to save, esc to cancel", kind, r.Task.Title))
	return nil
}

// updateGesture nudges the active gesture one cell at a time. Nothing is
// written until enter.
func (v *GanttView) updateGesture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cw := v.layout.CellWidth

	switch {
	case key.Matches(msg, v.keys.Back):
		v.gesture = nil
		v.setStatus("cancelled")
		return v, nil

	case key.Matches(msg, v.keys.Left):
		g := v.gesture.Nudge(cw)
		v.gesture = &g
		v.previewStatus()
		return v, nil

	case key.Matches(msg, v.keys.Right):
		g := v.gesture.Nudge(-cw)
		v.gesture = &g
		v.previewStatus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		g := *v.gesture
		v.gesture = nil

		task, applied, err := v.layout.Apply(g)
		if err != nil {
			v.setError(err)
			return v, nil
		}
		if !applied {
			v.setStatus(g.Kind.String() + ": no change")
			return v, nil
		}

		// optimistic: show the new dates while the write is in flight
		v.replaceTask(task)
		v.rebuild()
		return v, v.commit(task)

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}

	return v, nil
}

func (v *GanttView) previewStatus() {
	task, applied, err := v.layout.Apply(*v.gesture)
	switch {
	case err != nil:
		v.setError(err)
	case !applied:
		v.setStatus(v.gesture.Kind.String() + ": no change")
	default:
		v.setStatus(fmt.Sprintf("%s %q → %s … %s", v.gesture.Kind, task.Title,
			v.cal.FormatLocal(task.StartDate), v.cal.FormatLocal(task.EndDate)))
	}
}

// commit is the only place a dragged task is written back
func (v *GanttView) commit(t models.Task) tea.Cmd {
	return func() tea.Msg {
		return TaskCommitted{Task: t, Err: v.db.UpdateTask(t)}
	}
}

func (v *GanttView) replaceTask(t models.Task) {
	for i := range v.tasks {
		if v.tasks[i].ID == t.ID {
			v.tasks[i] = t
			return
		}
	}
}

func (v *GanttView) setExpanded(g models.Group, expanded bool) tea.Cmd {
	return func() tea.Msg {
		return chartSavedMsg{err: v.db.SetGroupExpanded(g.ID, expanded)}
	}
}

func (v *GanttView) startNewTask() {
	start := v.cal.StartOfPeriod(v.now(), calendar.Day)
	t := models.Task{
		ProjectID: v.project.ID,
		StartDate: start,
		EndDate:   v.cal.AddPeriods(start, 2, calendar.Day),
	}
	// new tasks land in the group under the cursor
	switch r := v.selectedRow().(type) {
	case timeline.GroupRow:
		id := r.Group.ID
		t.GroupID = &id
	case timeline.TaskRow:
		if r.GroupID != "" {
			id := r.GroupID
			t.GroupID = &id
		}
	}
	v.taskForm = newTaskForm(v.styles, v.keys, v.cal, v.groups, t, true)
}

func (v *GanttView) updateTaskForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.taskForm.update(msg)
	switch result {
	case formCancelled:
		v.taskForm = nil
		return v, nil
	case formSubmitted:
		t, err := v.taskForm.value()
		if err != nil {
			v.taskForm.err = err.Error()
			return v, nil
		}
		isNew := v.taskForm.isNew
		v.taskForm = nil
		if isNew {
			return v, func() tea.Msg {
				_, err := v.db.CreateTask(t)
				return chartSavedMsg{done: fmt.Sprintf("created %q", t.Title), err: err}
			}
		}
		return v, v.commit(t)
	}
	return v, cmd
}

func (v *GanttView) updateGroupForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.groupForm.update(msg)
	switch result {
	case formCancelled:
		v.groupForm = nil
		return v, nil
	case formSubmitted:
		name, color, err := v.groupForm.value()
		if err != nil {
			v.groupForm.err = err.Error()
			return v, nil
		}
		editing := v.groupForm.group
		v.groupForm = nil
		projectID := v.project.ID
		return v, func() tea.Msg {
			if editing != nil {
				err := v.db.UpdateGroup(editing.ID, name, color)
				return chartSavedMsg{done: fmt.Sprintf("updated group %q", name), err: err}
			}
			_, err := v.db.CreateGroup(projectID, name, color)
			return chartSavedMsg{done: fmt.Sprintf("created group %q", name), err: err}
		}
	}
	return v, cmd
}

func (v *GanttView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		target := v.deleteTarget
		v.confirmingDelete = false
		v.deleteTarget = nil
		return v, func() tea.Msg {
			switch r := target.(type) {
			case timeline.TaskRow:
				return chartSavedMsg{done: fmt.Sprintf("deleted %q", r.Task.Title), err: v.db.DeleteTask(r.Task.ID)}
			case timeline.GroupRow:
				return chartSavedMsg{done: fmt.Sprintf("deleted group %q", r.Group.Name), err: v.db.DeleteGroup(r.Group.ID)}
			}
			return nil
		}
	case "n", "N", "esc":
		v.confirmingDelete = false
		v.deleteTarget = nil
		return v, nil
	}
	return v, nil
}

func (v *GanttView) selectedRow() timeline.Row {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return nil
	}
	return v.rows[v.cursor]
}

func (v *GanttView) setStatus(s string) {
	v.status = s
	v.statusErr = false
}

func (v *GanttView) setError(err error) {
	v.status = err.Error()
	if errors.Is(err, models.ErrInvalidDateRange) {
		v.status = "end date is before start date"
	}
	v.statusErr = true
}

func (v *GanttView) labelWidth() int {
	return clamp(v.width/4, 12, 28)
}

// chartWidth is the number of chart columns that fit beside the labels
func (v *GanttView) chartWidth() int {
	return max(v.width-v.labelWidth()-1, 10)
}

func (v *GanttView) visibleRows() int {
	// title, two header lines, status, help (padded)
	return max(v.height-8, 1)
}

func (v *GanttView) cellColumns() int {
	if v.layout == nil {
		return 1
	}
	return max(v.layout.CellWidth/v.ppc, 1)
}

func (v *GanttView) maxScrollX() int {
	return max(v.grid.cols-v.chartWidth(), 0)
}

func (v *GanttView) scrollToToday() {
	if v.layout == nil {
		return
	}
	marker, ok := v.layout.Today(v.now())
	if !ok {
		return
	}
	fromRight := v.grid.cols - 1 - v.grid.col(marker.Offset)
	v.scrollX = clamp(fromRight-v.chartWidth()/2, 0, v.maxScrollX())
}

func (v *GanttView) ensureVisible() {
	visible := v.visibleRows()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visible {
		v.scrollY = v.cursor - visible + 1
	}
	v.scrollY = clamp(v.scrollY, 0, max(len(v.rows)-visible, 0))
}

// window returns the chart columns currently on screen
func (v *GanttView) window() (from, to int) {
	to = v.grid.cols - v.scrollX
	from = max(to-v.chartWidth(), 0)
	return from, to
}

// View renders the view
func (v *GanttView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.taskForm != nil {
		return v.taskForm.view(v.width, v.height)
	}

	if v.groupForm != nil {
		return v.groupForm.view(v.width, v.height)
	}

	if !v.loaded {
		return v.styles.TitleMuted.Render("Loading...")
	}

	var b strings.Builder
	b.WriteString(v.renderTitle())
	b.WriteString("\n")
	b.WriteString(v.renderChart())
	b.WriteString("\n")
	b.WriteString(v.renderStatus())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *GanttView) renderTitle() string {
	s := v.styles
	title := s.Title.Render(v.project.Title)
	if v.layout == nil {
		return title
	}
	span := fmt.Sprintf(" %s · %s → %s", v.view,
		v.cal.Label(v.layout.StartDate, calendar.LabelLong),
		v.cal.Label(v.layout.EndDate, calendar.LabelLong))
	return title + s.TitleMuted.Render(span)
}

func (v *GanttView) renderChart() string {
	s := v.styles
	if v.layout == nil {
		return s.TitleMuted.Render("Nothing to draw.")
	}

	labelW := v.labelWidth()
	from, to := v.window()
	pad := " " + strings.Repeat(" ", labelW)

	months, days, weekend := v.paintHeaders()
	marker, hasToday := v.layout.Today(v.now())
	todayCol := v.grid.col(marker.Offset)

	lines := []string{
		months.render(s, from, to) + pad,
		days.render(s, from, to) + pad,
	}

	if len(v.rows) == 0 {
		lines = append(lines, s.TitleMuted.Render("No tasks. Press 'n' to create one."))
		return strings.Join(lines, "\n")
	}

	end := min(v.scrollY+v.visibleRows(), len(v.rows))
	for i := v.scrollY; i < end; i++ {
		row := v.rows[i]
		line := newStrip(v.grid.cols)
		for _, w := range weekend {
			line.shade(w[0], w[1])
		}

		switch r := row.(type) {
		case timeline.TaskRow:
			v.paintTask(line, r.Task)
		case timeline.GroupRow:
			v.paintSummary(line, r.Group)
		}

		if hasToday && line[todayCol].paint == paintEmpty {
			line[todayCol].r = '│'
			line[todayCol].paint = paintToday
		}

		lines = append(lines, line.render(s, from, to)+" "+v.rowLabel(row, labelW, i == v.cursor))
	}

	return strings.Join(lines, "\n")
}

// paintHeaders draws the month and day/week header lines and returns the
// weekend column spans for the row lines.
func (v *GanttView) paintHeaders() (months, days strip, weekend [][2]int) {
	months = newStrip(v.grid.cols)
	days = newStrip(v.grid.cols)

	cells := v.layout.Cells()
	cw := v.layout.CellWidth
	daily := v.view == timeline.Daily

	for i, c := range cells {
		left, right := v.grid.span(i*cw, cw)
		if daily {
			days.text(left, right, v.cal.Label(c, calendar.LabelDay), paintHeader, false)
			if v.cal.IsWeekend(c) {
				days.shade(left, right)
				weekend = append(weekend, [2]int{left, right})
			}
		} else {
			days.text(left, right, v.cal.Label(c, calendar.LabelShort), paintHeader, false)
		}
	}

	// month labels sit at the right edge of each run of cells in that month
	for i := 0; i < len(cells); {
		label := v.cal.Label(cells[i], calendar.LabelMonth)
		j := i
		for j+1 < len(cells) && v.cal.Label(cells[j+1], calendar.LabelMonth) == label {
			j++
		}
		left, right := v.grid.span(i*cw, (j-i+1)*cw)
		months.text(left, right, label, paintMonth, true)
		i = j + 1
	}

	if marker, ok := v.layout.Today(v.now()); ok {
		if daily {
			left, right := v.grid.span(marker.Cell*cw, cw)
			for c := left; c <= right; c++ {
				days[c].paint = paintTodayHeader
			}
		} else {
			col := v.grid.col(marker.Offset)
			days[col].r = '▾'
			days[col].paint = paintTodayHeader
		}
	}

	return months, days, weekend
}

func (v *GanttView) paintTask(line strip, t models.Task) {
	p := paintBar
	if v.gesture != nil && v.gesture.Task.ID == t.ID {
		if preview, _, err := v.layout.Apply(*v.gesture); err == nil {
			t = preview
		}
		p = paintPreview
	}

	bar, err := v.layout.Position(t)
	if err != nil {
		return
	}
	left, right := v.grid.span(bar.Offset, bar.Width)
	color := t.DisplayColor(v.groupColor(t))

	// progress fills from the start (right) edge
	n := right - left + 1
	done := n
	if t.Progress != nil {
		done = n * *t.Progress / 100
	}
	for k := 0; k < n; k++ {
		r := '█'
		if k >= done {
			r = '▒'
		}
		line.fill(right-k, right-k, r, p, color)
	}
}

// paintSummary draws a thin bar spanning all of a group's tasks
func (v *GanttView) paintSummary(line strip, g models.Group) {
	var span models.Task
	found := false
	for _, t := range v.tasks {
		if !t.InGroup(g.ID) {
			continue
		}
		if !found || t.StartDate.Before(span.StartDate) {
			span.StartDate = t.StartDate
		}
		if !found || t.EndDate.After(span.EndDate) {
			span.EndDate = t.EndDate
		}
		found = true
	}
	if !found {
		return
	}

	bar, err := v.layout.Position(span)
	if err != nil {
		return
	}
	left, right := v.grid.span(bar.Offset, bar.Width)
	color := g.Color
	if color == "" {
		color = string(styles.Current.Accent)
	}
	line.fill(left, right, '━', paintSummary, color)
}

func (v *GanttView) groupColor(t models.Task) string {
	if t.GroupID == nil {
		return ""
	}
	for _, g := range v.groups {
		if g.ID == *t.GroupID {
			return g.Color
		}
	}
	return ""
}

// rowLabel renders the right-hand label column for a row
func (v *GanttView) rowLabel(row timeline.Row, width int, selected bool) string {
	s := v.styles
	var text string
	style := s.RowLabel

	switch r := row.(type) {
	case timeline.GroupRow:
		arrow := "▾"
		if !r.Group.Expanded {
			arrow = "▸"
		}
		text = fmt.Sprintf("%s (%d) %s", r.Group.Name, r.Members, arrow)
		style = s.GroupLabel
		if r.Group.Color != "" {
			style = style.Foreground(lipgloss.Color(r.Group.Color))
		}
	case timeline.TaskRow:
		text = r.Task.Title
		if r.GroupID != "" {
			text += "  "
		}
	}

	text = runewidth.FillLeft(runewidth.Truncate(text, width, "…"), width)
	if selected {
		style = s.RowSelected
	}
	return style.Render(text)
}

func (v *GanttView) renderStatus() string {
	if v.status == "" {
		return v.styles.StatusBar.Render(" ")
	}
	if v.statusErr {
		return v.styles.StatusError.Render(v.status)
	}
	return v.styles.StatusBar.Render(v.status)
}

func (v *GanttView) renderHelp() string {
	s := v.styles
	// At narrow widths, show hint to press ? for help
	if v.width > 0 && v.width < 60 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}

	bindings := v.keys.ShortHelp()
	if v.gesture != nil {
		bindings = []key.Binding{v.keys.Left, v.keys.Right, v.keys.Enter, v.keys.Back}
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, s.HelpKey.Render(b.Help().Key)+" "+b.Help().Desc)
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

func (v *GanttView) renderHelpPopup() string {
	s := v.styles

	var columns []string
	for _, group := range v.keys.FullHelp() {
		var items []string
		for _, b := range group {
			k := runewidth.FillRight(b.Help().Key, 7)
			items = append(items, s.HelpKey.Render(k)+s.HelpDesc.Render(b.Help().Desc))
		}
		columns = append(columns, lipgloss.JoinVertical(lipgloss.Left, items...))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Keyboard Shortcuts"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(columns, "   ")...),
		"",
		s.TitleMuted.Render("Press any key to close"),
	)

	return lipgloss.Place(v.width, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
}

func (v *GanttView) renderDeleteConfirm() string {
	s := v.styles

	heading, detail := "Delete Task?", ""
	switch r := v.deleteTarget.(type) {
	case timeline.TaskRow:
		detail = r.Task.Title
	case timeline.GroupRow:
		heading = "Delete Group?"
		detail = r.Group.Name + " (its tasks are kept, ungrouped)"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(heading),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	return lipgloss.Place(v.width, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}

func joinWithGap(parts []string, gap string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, gap)
		}
		out = append(out, p)
	}
	return out
}
