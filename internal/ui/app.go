package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/gantt/internal/db"
	"github.com/tgienger/gantt/internal/models"
	"github.com/tgienger/gantt/internal/timeline"
	"github.com/tgienger/gantt/internal/ui/views"
)

// Settings keys
const (
	settingLastProject = "last_project_id"
	settingChartView   = "chart_view"
)

// Currently active view
type View int

const (
	ViewProjects View = iota
	ViewChart
)

// App routes between the project list and a project's chart
type App struct {
	db          *db.DB
	opts        views.ChartOptions
	currentView View
	projectList *views.ProjectListView
	chart       *views.GanttView
	width       int
	height      int
}

// NewApp creates a new application. opts.View is the fallback when no view
// was saved from an earlier session, unless opts.ForceView is set.
func NewApp(database *db.DB, opts views.ChartOptions) *App {
	if opts.ForceView {
		if err := database.SetSetting(settingChartView, opts.View.String()); err != nil {
			log.Printf("save setting %s: %v", settingChartView, err)
		}
	} else if saved, err := database.GetSetting(settingChartView); err == nil && saved != "" {
		if v, err := timeline.ParseView(saved); err == nil {
			opts.View = v
		}
	}

	return &App{
		db:          database,
		opts:        opts,
		currentView: ViewProjects,
		projectList: views.NewProjectListView(database),
	}
}

func (a *App) Init() tea.Cmd {
	// Reopen the last project
	lastProjectID, err := a.db.GetSetting(settingLastProject)
	if err == nil && lastProjectID != "" {
		project, err := a.db.GetProject(lastProjectID)
		if err == nil {
			return a.openProject(*project)
		}
		log.Printf("reopen project %s: %v", lastProjectID, err)
	}

	return a.projectList.Init()
}

func (a *App) openProject(project models.Project) tea.Cmd {
	a.currentView = ViewChart
	a.chart = views.NewGanttView(a.db, project, a.opts)
	a.saveSetting(settingLastProject, project.ID)

	// Initialize chart with window size
	return tea.Batch(
		a.chart.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) saveSetting(key, value string) {
	if err := a.db.SetSetting(key, value); err != nil {
		log.Printf("save setting %s: %v", key, err)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update project list size since it persists
		a.projectList.Update(msg)

	case views.SelectedProject:
		return a, a.openProject(msg.Project)

	case views.ViewChanged:
		a.opts.View = msg.View
		a.saveSetting(settingChartView, msg.View.String())
		return a, nil

	case views.BackToProjects:
		a.currentView = ViewProjects
		a.chart = nil
		a.saveSetting(settingLastProject, "")
		return a, tea.Batch(
			a.projectList.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewProjects:
		_, cmd = a.projectList.Update(msg)
	case ViewChart:
		if a.chart != nil {
			_, cmd = a.chart.Update(msg)
		}
	}

	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewChart && a.chart != nil {
		return a.chart.View()
	}
	return a.projectList.View()
}
