package views

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/models"
	"github.com/tgienger/gantt/internal/ui/keys"
	"github.com/tgienger/gantt/internal/ui/styles"
)

type formResult int

const (
	formOpen formResult = iota
	formCancelled
	formSubmitted
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func checkColor(s string) error {
	if s != "" && !hexColor.MatchString(s) {
		return fmt.Errorf("color %q: use #rrggbb", s)
	}
	return nil
}

// Task form fields, in focus order
const (
	fieldTitle = iota
	fieldStart
	fieldEnd
	fieldProgress
	fieldColor
	fieldCount
)

// focus stops after the text fields
const (
	focusGroup = fieldCount + iota
	focusSave
	focusStops
)

// taskForm edits one task. Dates are typed in the local calendar.
type taskForm struct {
	styles *styles.Styles
	keys   keys.KeyMap
	cal    calendar.Calendar

	task   models.Task
	isNew  bool
	groups []models.Group
	group  int // 0 = ungrouped, i = groups[i-1]

	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newTaskForm(s *styles.Styles, k keys.KeyMap, cal calendar.Calendar, groups []models.Group, t models.Task, isNew bool) *taskForm {
	f := &taskForm{
		styles: s,
		keys:   k,
		cal:    cal,
		task:   t,
		isNew:  isNew,
		groups: groups,
	}

	placeholders := [fieldCount]string{"Task title", "YYYY/MM/DD", "YYYY/MM/DD", "0-100 (optional)", "#rrggbb (optional)"}
	limits := [fieldCount]int{200, 10, 10, 3, 7}
	for i := range f.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		f.inputs[i] = in
	}

	f.inputs[fieldTitle].SetValue(t.Title)
	f.inputs[fieldStart].SetValue(cal.FormatLocal(t.StartDate))
	f.inputs[fieldEnd].SetValue(cal.FormatLocal(t.EndDate))
	if t.Progress != nil {
		f.inputs[fieldProgress].SetValue(strconv.Itoa(*t.Progress))
	}
	f.inputs[fieldColor].SetValue(t.Color)

	for i, g := range groups {
		if t.InGroup(g.ID) {
			f.group = i + 1
		}
	}

	f.updateFocus()
	return f
}

func (f *taskForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancelled, nil

	case msg.String() == "ctrl+s":
		return formSubmitted, nil

	case key.Matches(msg, f.keys.Tab):
		f.focus = (f.focus + 1) % focusStops
		f.updateFocus()
		return formOpen, nil

	case msg.String() == "shift+tab":
		f.focus = (f.focus + focusStops - 1) % focusStops
		f.updateFocus()
		return formOpen, nil

	case key.Matches(msg, f.keys.Enter):
		if f.focus == focusSave {
			return formSubmitted, nil
		}
		f.focus++
		f.updateFocus()
		return formOpen, nil
	}

	if f.focus == focusGroup {
		n := len(f.groups) + 1
		switch {
		case key.Matches(msg, f.keys.Left), key.Matches(msg, f.keys.Up):
			f.group = (f.group + n - 1) % n
		case key.Matches(msg, f.keys.Right), key.Matches(msg, f.keys.Down):
			f.group = (f.group + 1) % n
		}
		return formOpen, nil
	}
	if f.focus >= fieldCount {
		return formOpen, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formOpen, cmd
}

func (f *taskForm) updateFocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// value returns the edited task or the first problem with the input
func (f *taskForm) value() (models.Task, error) {
	t := f.task

	t.Title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	if t.Title == "" {
		return t, errors.New("title is required")
	}

	var err error
	if t.StartDate, err = f.cal.ParseLocal(f.inputs[fieldStart].Value()); err != nil {
		return t, fmt.Errorf("start date: %w", err)
	}
	if t.EndDate, err = f.cal.ParseLocal(f.inputs[fieldEnd].Value()); err != nil {
		return t, fmt.Errorf("end date: %w", err)
	}

	t.Progress = nil
	if p := strings.TrimSpace(f.inputs[fieldProgress].Value()); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return t, fmt.Errorf("progress %q is not a number", p)
		}
		t.Progress = &n
	}

	t.Color = strings.TrimSpace(f.inputs[fieldColor].Value())
	if err := checkColor(t.Color); err != nil {
		return t, err
	}

	t.GroupID = nil
	if f.group > 0 {
		id := f.groups[f.group-1].ID
		t.GroupID = &id
	}

	if err := t.Validate(); err != nil {
		if errors.Is(err, models.ErrInvalidDateRange) {
			return t, errors.New("end date is before start date")
		}
		return t, err
	}
	return t, nil
}

func (f *taskForm) view(width, height int) string {
	s := f.styles
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	title := "New Task"
	if !f.isNew {
		title = "Edit Task"
	}

	fieldStyle := func(i int) lipgloss.Style {
		if f.focus == i {
			return s.InputFocused
		}
		return s.Input
	}

	groupName := "No group"
	if f.group > 0 {
		groupName = f.groups[f.group-1].Name
	}
	btnStyle := s.Button
	if f.focus == focusSave {
		btnStyle = s.ButtonFocused
	}

	dates := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, "Start:", fieldStyle(fieldStart).Width(14).Render(f.inputs[fieldStart].View())),
		"  ",
		lipgloss.JoinVertical(lipgloss.Left, "End:", fieldStyle(fieldEnd).Width(14).Render(f.inputs[fieldEnd].View())),
	)

	parts := []string{
		s.Title.Render(title),
		"",
		"Title:",
		fieldStyle(fieldTitle).Width(inputWidth).Render(f.inputs[fieldTitle].View()),
		dates,
		"Progress:",
		fieldStyle(fieldProgress).Width(14).Render(f.inputs[fieldProgress].View()),
		"Color:",
		fieldStyle(fieldColor).Width(14).Render(f.inputs[fieldColor].View()),
		"Group:",
		fieldStyle(focusGroup).Width(inputWidth).Render("◂ " + groupName + " ▸"),
		"",
		btnStyle.Render(" Save "),
	}
	if f.err != "" {
		parts = append(parts, "", s.StatusError.Render(f.err))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • ←/→: group • Ctrl+S: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
	return styles.CenterView(centered, width, height)
}

// groupForm creates or renames a group
type groupForm struct {
	styles *styles.Styles
	keys   keys.KeyMap

	group *models.Group // nil when creating
	name  textinput.Model
	color textinput.Model
	focus int // 0=name, 1=color, 2=save
	err   string
}

func newGroupForm(s *styles.Styles, k keys.KeyMap, g *models.Group) *groupForm {
	name := textinput.New()
	name.Placeholder = "Group name"
	name.CharLimit = 100

	color := textinput.New()
	color.Placeholder = "#rrggbb (optional)"
	color.CharLimit = 7

	if g != nil {
		name.SetValue(g.Name)
		color.SetValue(g.Color)
	}
	name.Focus()

	return &groupForm{styles: s, keys: k, group: g, name: name, color: color}
}

func (f *groupForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancelled, nil

	case msg.String() == "ctrl+s":
		return formSubmitted, nil

	case msg.String() == "shift+tab":
		f.focus = (f.focus + 2) % 3
		f.updateFocus()
		return formOpen, nil

	case key.Matches(msg, f.keys.Tab):
		f.focus = (f.focus + 1) % 3
		f.updateFocus()
		return formOpen, nil

	case key.Matches(msg, f.keys.Enter):
		if f.focus == 2 {
			return formSubmitted, nil
		}
		f.focus++
		f.updateFocus()
		return formOpen, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.color, cmd = f.color.Update(msg)
	}
	return formOpen, cmd
}

func (f *groupForm) updateFocus() {
	f.name.Blur()
	f.color.Blur()
	switch f.focus {
	case 0:
		f.name.Focus()
	case 1:
		f.color.Focus()
	}
}

func (f *groupForm) value() (name, color string, err error) {
	name = strings.TrimSpace(f.name.Value())
	if name == "" {
		return "", "", errors.New("name is required")
	}
	color = strings.TrimSpace(f.color.Value())
	return name, color, checkColor(color)
}

func (f *groupForm) view(width, height int) string {
	s := f.styles
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	title := "New Group"
	if f.group != nil {
		title = "Edit Group"
	}

	nameStyle, colorStyle, btnStyle := s.Input, s.Input, s.Button
	switch f.focus {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		colorStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	parts := []string{
		s.Title.Render(title),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(f.name.View()),
		"",
		"Color:",
		colorStyle.Width(14).Render(f.color.View()),
		"",
		btnStyle.Render(" Save "),
	}
	if f.err != "" {
		parts = append(parts, "", s.StatusError.Render(f.err))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
	return styles.CenterView(centered, width, height)
}

// projectForm creates or renames a project
type projectForm struct {
	styles *styles.Styles
	keys   keys.KeyMap

	project *models.Project // nil when creating
	name    textinput.Model
	desc    textinput.Model
	focus   int // 0=name, 1=description, 2=save
	err     string
}

func newProjectForm(s *styles.Styles, k keys.KeyMap, p *models.Project) *projectForm {
	name := textinput.New()
	name.Placeholder = "Project name"
	name.CharLimit = 100

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 200

	if p != nil {
		name.SetValue(p.Title)
		desc.SetValue(p.Description)
	}
	name.Focus()

	return &projectForm{styles: s, keys: k, project: p, name: name, desc: desc}
}

func (f *projectForm) update(msg tea.KeyMsg) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancelled, nil
	case msg.String() == "ctrl+s":
		return formSubmitted, nil
	case msg.String() == "shift+tab":
		f.setFocus(f.focus + 2)
		return formOpen, nil
	case key.Matches(msg, f.keys.Tab):
		f.setFocus(f.focus + 1)
		return formOpen, nil
	case key.Matches(msg, f.keys.Enter):
		if f.focus == 2 {
			return formSubmitted, nil
		}
		f.setFocus(f.focus + 1)
		return formOpen, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case 0:
		f.name, cmd = f.name.Update(msg)
	case 1:
		f.desc, cmd = f.desc.Update(msg)
	}
	return formOpen, cmd
}

func (f *projectForm) setFocus(i int) {
	f.focus = i % 3
	f.name.Blur()
	f.desc.Blur()
	switch f.focus {
	case 0:
		f.name.Focus()
	case 1:
		f.desc.Focus()
	}
}

func (f *projectForm) value() (title, desc string, err error) {
	title = strings.TrimSpace(f.name.Value())
	if title == "" {
		return "", "", errors.New("name is required")
	}
	return title, strings.TrimSpace(f.desc.Value()), nil
}

func (f *projectForm) view(width, height int) string {
	s := f.styles
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	title, button := "New Project", " Create "
	if f.project != nil {
		title, button = "Edit Project", " Save "
	}

	nameStyle, descStyle, btnStyle := s.Input, s.Input, s.Button
	switch f.focus {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	parts := []string{
		s.Title.Render(title),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(f.name.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(f.desc.View()),
		"",
		btnStyle.Render(button),
	}
	if f.err != "" {
		parts = append(parts, "", s.StatusError.Render(f.err))
	}
	parts = append(parts, "", s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"))

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
	return styles.CenterView(centered, width, height)
}
