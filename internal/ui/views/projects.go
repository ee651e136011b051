package views

import (
	"fmt"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/gantt/internal/db"
	"github.com/tgienger/gantt/internal/models"
	"github.com/tgienger/gantt/internal/ui/keys"
	"github.com/tgienger/gantt/internal/ui/styles"
)

type projectItem struct {
	project models.Project
}

func (i projectItem) Title() string { return i.project.Title }

// Description is the list's second line: the project description followed
// by the day it last changed
func (i projectItem) Description() string {
	edited := "edited " + i.project.UpdatedAt.Local().Format("2006-01-02")
	if i.project.Description == "" {
		return edited
	}
	return i.project.Description + " · " + edited
}

func (i projectItem) FilterValue() string { return i.project.Title }

type projectDelegate struct {
	styles *styles.Styles
	width  int
}

func (d projectDelegate) Height() int                         { return 2 }
func (d projectDelegate) Spacing() int                        { return 1 }
func (d projectDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	p, ok := item.(projectItem)
	if !ok {
		return
	}

	base := d.styles.ListItem
	if index == m.Index() {
		base = d.styles.ListSelected
	}
	width := max(d.width-4, 20)

	fmt.Fprintf(w, "%s\n%s",
		base.Width(width).Render(p.Title()),
		base.Foreground(styles.Current.ForegroundDim).Width(width).Render(p.Description()),
	)
}

type projectsLoadedMsg struct {
	projects []models.Project
}

type projectsFailedMsg struct {
	err error
}

// SelectedProject asks the app to open a project's chart
type SelectedProject struct {
	Project models.Project
}

// ProjectListView lists projects and creates, renames or deletes them
type ProjectListView struct {
	db       *db.DB
	list     list.Model
	delegate *projectDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
	loaded   bool

	// Open create/rename form, nil otherwise
	form *projectForm

	// Project awaiting delete confirmation
	deleting *models.Project

	err           string
	showHelpPopup bool
}

func NewProjectListView(database *db.DB) *ProjectListView {
	s := styles.NewStyles()
	delegate := &projectDelegate{styles: s, width: 80}

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Projects"
	l.Styles.Title = s.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return &ProjectListView{
		db:       database,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

func (v *ProjectListView) Init() tea.Cmd {
	return v.loadProjects
}

func (v *ProjectListView) loadProjects() tea.Msg {
	projects, err := v.db.ListProjects()
	if err != nil {
		return projectsFailedMsg{err: err}
	}
	return projectsLoadedMsg{projects: projects}
}

func (v *ProjectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case projectsLoadedMsg:
		items := make([]list.Item, 0, len(msg.projects))
		for _, p := range msg.projects {
			items = append(items, projectItem{project: p})
		}
		v.loaded = true
		return v, v.list.SetItems(items)

	case projectsFailedMsg:
		v.loaded = true
		v.setError("list projects", msg.err)
		return v, nil

	case tea.KeyMsg:
		switch {
		case v.showHelpPopup:
			v.showHelpPopup = false
			return v, nil
		case v.deleting != nil:
			return v, v.updateConfirmDelete(msg)
		case v.form != nil:
			return v, v.updateForm(msg)
		case v.list.FilterState() == list.Filtering:
			// the list owns keys while a filter is typed
		default:
			if cmd, handled := v.updateNormal(msg); handled {
				return v, cmd
			}
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// updateNormal handles list-level shortcuts. Unhandled keys fall through to
// the list for navigation and filtering.
func (v *ProjectListView) updateNormal(msg tea.KeyMsg) (tea.Cmd, bool) {
	selected, hasSelection := v.list.SelectedItem().(projectItem)

	switch {
	case key.Matches(msg, v.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, v.keys.Back):
		// esc only clears an applied filter
		return nil, v.list.FilterState() != list.FilterApplied
	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return nil, true
	case key.Matches(msg, v.keys.New):
		v.err = ""
		v.form = newProjectForm(v.styles, v.keys, nil)
		return textinput.Blink, true
	}

	if !hasSelection {
		return nil, false
	}
	p := selected.project

	switch {
	case key.Matches(msg, v.keys.Enter):
		return func() tea.Msg { return SelectedProject{Project: p} }, true
	case key.Matches(msg, v.keys.Edit):
		v.err = ""
		v.form = newProjectForm(v.styles, v.keys, &p)
		return textinput.Blink, true
	case key.Matches(msg, v.keys.Delete):
		v.deleting = &p
		return nil, true
	}
	return nil, false
}

func (v *ProjectListView) updateConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		target := v.deleting
		v.deleting = nil
		if err := v.db.DeleteProject(target.ID); err != nil {
			v.setError("delete project "+target.ID, err)
			return nil
		}
		return v.loadProjects
	case "n", "N", "esc":
		v.deleting = nil
	}
	return nil
}

func (v *ProjectListView) updateForm(msg tea.KeyMsg) tea.Cmd {
	result, cmd := v.form.update(msg)
	switch result {
	case formCancelled:
		v.form = nil
		return nil
	case formSubmitted:
		return v.save()
	}
	return cmd
}

// save stores a rename and reloads the list, or creates the project and
// opens it. Failures keep the form open with the error shown.
func (v *ProjectListView) save() tea.Cmd {
	title, desc, err := v.form.value()
	if err != nil {
		v.form.err = err.Error()
		return nil
	}

	if existing := v.form.project; existing != nil {
		if err := v.db.UpdateProject(existing.ID, title, desc); err != nil {
			log.Printf("update project %s: %v", existing.ID, err)
			v.form.err = err.Error()
			return nil
		}
		v.form = nil
		return v.loadProjects
	}

	project, err := v.db.CreateProject(title, desc)
	if err != nil {
		log.Printf("create project: %v", err)
		v.form.err = err.Error()
		return nil
	}
	v.form = nil
	return func() tea.Msg { return SelectedProject{Project: *project} }
}

func (v *ProjectListView) setError(op string, err error) {
	log.Printf("%s: %v", op, err)
	v.err = err.Error()
}

// View renders the view
func (v *ProjectListView) View() string {
	switch {
	case v.showHelpPopup:
		return v.renderHelpPopup()
	case v.deleting != nil:
		return v.renderDeleteConfirm()
	case v.form != nil:
		return v.form.view(v.width, v.height)
	case !v.loaded:
		return v.styles.TitleMuted.Render("Loading...")
	}

	var content string
	if len(v.list.Items()) == 0 {
		content = v.renderEmpty()
	} else {
		content = v.list.View() + "\n" + v.renderHelp()
	}
	if v.err != "" {
		content += "\n" + v.styles.StatusError.Render(v.err)
	}
	return styles.CenterView(content, v.width, v.height)
}

func (v *ProjectListView) renderEmpty() string {
	s := v.styles
	return lipgloss.Place(styles.ContentWidth(v.width), max(v.height-2, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render("No Projects"),
			"",
			s.TitleMuted.Render("Press 'n' to create your first project"),
			"",
			s.ButtonPrimary.Render(" New Project "),
		),
	)
}

func (v *ProjectListView) renderHelp() string {
	s := v.styles
	if w := styles.ContentWidth(v.width); w > 0 && w < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	return s.Help.Render(
		fmt.Sprintf("%s open • %s new • %s edit • %s del • %s filter • %s quit",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("q"),
		),
	)
}

func (v *ProjectListView) renderHelpPopup() string {
	s := v.styles
	lines := []string{
		s.Title.Render("Keyboard Shortcuts"),
		"",
		s.HelpKey.Render("↵") + "      open chart",
		s.HelpKey.Render("n") + "      new project",
		s.HelpKey.Render("e") + "      rename project",
		s.HelpKey.Render("d") + "      delete project",
		s.HelpKey.Render("/") + "      filter",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	centered := lipgloss.Place(styles.ContentWidth(v.width), v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *ProjectListView) renderDeleteConfirm() string {
	s := v.styles

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Project?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("%q and all of its tasks and groups will be removed.", v.deleting.Title)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(styles.ContentWidth(v.width), v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
