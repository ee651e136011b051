package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/db"
	"github.com/tgienger/gantt/internal/models"
	"github.com/tgienger/gantt/internal/timeline"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type chartFixture struct {
	view    *GanttView
	db      *db.DB
	project *models.Project
	task    *models.Task
}

func newChart(t *testing.T) chartFixture {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	database.SetLocation(time.UTC)

	project, err := database.CreateProject("Launch", "")
	require.NoError(t, err)
	task, err := database.CreateTask(models.Task{
		ProjectID: project.ID,
		Title:     "Design",
		StartDate: day(2024, 1, 3),
		EndDate:   day(2024, 1, 5),
	})
	require.NoError(t, err)

	cal := calendar.Default()
	cal.Location = time.UTC
	cal.System = calendar.Gregorian

	v := NewGanttView(database, *project, ChartOptions{
		Calendar:        cal,
		View:            timeline.Daily,
		PixelsPerColumn: 10,
		Now:             func() time.Time { return time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC) },
	})
	v.Update(tea.WindowSizeMsg{Width: 160, Height: 30})
	v.Update(v.load())
	require.True(t, v.loaded)
	require.NotNil(t, v.layout)

	return chartFixture{view: v, db: database, project: project, task: task}
}

func press(v *GanttView, msgs ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = v.Update(m)
	}
	return cmd
}

func TestGantt_MoveCommits(t *testing.T) {
	f := newChart(t)

	press(f.view, runes("m"), keyLeft)
	require.NotNil(t, f.view.gesture)
	assert.Equal(t, timeline.GestureMove, f.view.gesture.Kind)

	stored, err := f.db.GetTask(f.task.ID)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 3), stored.StartDate, "nothing written while dragging")

	cmd := press(f.view, keyEnter)
	require.NotNil(t, cmd)
	assert.Nil(t, f.view.gesture)

	msg, ok := cmd().(TaskCommitted)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, day(2024, 1, 4), msg.Task.StartDate)
	assert.Equal(t, day(2024, 1, 6), msg.Task.EndDate)

	stored, err = f.db.GetTask(f.task.ID)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 4), stored.StartDate)
	assert.Equal(t, day(2024, 1, 6), stored.EndDate)

	_, reload := f.view.Update(msg)
	assert.NotNil(t, reload)
	assert.False(t, f.view.statusErr)
}

func TestGantt_RightNudgesEarlier(t *testing.T) {
	f := newChart(t)

	cmd := press(f.view, runes("]"), keyRight, keyEnter)
	require.NotNil(t, cmd)

	msg := cmd().(TaskCommitted)
	require.NoError(t, msg.Err)
	assert.Equal(t, day(2024, 1, 3), msg.Task.StartDate)
	assert.Equal(t, day(2024, 1, 4), msg.Task.EndDate)
}

func TestGantt_RejectedResizeWritesNothing(t *testing.T) {
	f := newChart(t)

	// drag the start edge onto and past the end date
	cmd := press(f.view, runes("["), keyLeft, keyLeft, keyLeft, keyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, f.view.status, "no change")

	stored, err := f.db.GetTask(f.task.ID)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 1, 3), stored.StartDate)
	assert.Equal(t, day(2024, 1, 5), stored.EndDate)
}

func TestGantt_CancelGesture(t *testing.T) {
	f := newChart(t)

	cmd := press(f.view, runes("m"), keyLeft, keyLeft, keyEsc)
	assert.Nil(t, cmd)
	assert.Nil(t, f.view.gesture)
	assert.Equal(t, day(2024, 1, 3), f.view.tasks[0].StartDate)
}

func TestGantt_FailedCommitReloads(t *testing.T) {
	f := newChart(t)

	// the optimistic copy is replaced by whatever the store still holds
	moved := *f.task
	moved.StartDate = day(2024, 1, 9)
	moved.EndDate = day(2024, 1, 9)
	f.view.replaceTask(moved)

	_, cmd := f.view.Update(TaskCommitted{Task: moved, Err: errors.New("disk full")})
	assert.True(t, f.view.statusErr)
	assert.Contains(t, f.view.status, "disk full")
	require.NotNil(t, cmd)

	f.view.Update(cmd())
	assert.Equal(t, day(2024, 1, 3), f.view.tasks[0].StartDate)
}

func TestGantt_ToggleView(t *testing.T) {
	f := newChart(t)

	cmd := press(f.view, runes("v"))
	require.NotNil(t, cmd)
	assert.Equal(t, ViewChanged{View: timeline.Weekly}, cmd())
	assert.Equal(t, timeline.Weekly, f.view.layout.View)
	assert.Equal(t, 120, f.view.layout.CellWidth)
}

func TestGantt_GroupsAndCollapse(t *testing.T) {
	f := newChart(t)

	g, err := f.db.CreateGroup(f.project.ID, "Phase 1", "")
	require.NoError(t, err)
	f.task.GroupID = &g.ID
	require.NoError(t, f.db.UpdateTask(*f.task))
	f.view.Update(f.view.load())

	require.Len(t, f.view.rows, 2)
	_, isGroup := f.view.rows[0].(timeline.GroupRow)
	assert.True(t, isGroup)

	cmd := press(f.view, runes(" "))
	require.NotNil(t, cmd)
	saved := cmd().(chartSavedMsg)
	require.NoError(t, saved.err)

	f.view.Update(f.view.load())
	assert.Len(t, f.view.rows, 1, "collapsed group hides its task")
}

func TestGantt_NewTaskForm(t *testing.T) {
	f := newChart(t)

	press(f.view, runes("n"))
	require.NotNil(t, f.view.taskForm)

	form := f.view.taskForm
	form.inputs[fieldTitle].SetValue("Build")
	form.inputs[fieldStart].SetValue("2024/01/10")
	form.inputs[fieldEnd].SetValue("2024/01/08")

	cmd := press(f.view, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	require.NotNil(t, f.view.taskForm, "inverted range keeps the form open")
	assert.Contains(t, f.view.taskForm.err, "before start")

	form.inputs[fieldEnd].SetValue("2024/01/12")
	cmd = press(f.view, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Nil(t, f.view.taskForm)

	saved := cmd().(chartSavedMsg)
	require.NoError(t, saved.err)

	tasks, err := f.db.ListTasks(f.project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Build", tasks[1].Title)
	assert.Equal(t, day(2024, 1, 10), tasks[1].StartDate)
}

func TestGantt_Render(t *testing.T) {
	f := newChart(t)

	out := f.view.View()
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "█")

	lines := strings.Split(out, "\n")
	assert.Greater(t, len(lines), 4)
}
