package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tgienger/gantt/internal/models"
)

// StoreTestSuite runs every store test against a fresh in-memory database
type StoreTestSuite struct {
	suite.Suite
	db      *DB
	project *models.Project
}

func (s *StoreTestSuite) SetupTest() {
	var err error
	s.db, err = Open(":memory:")
	s.Require().NoError(err)
	s.db.SetLocation(time.UTC)

	s.project, err = s.db.CreateProject("Roadmap", "next quarter")
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) createTask(title string, start, end time.Time) *models.Task {
	t, err := s.db.CreateTask(models.Task{
		ProjectID: s.project.ID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
	})
	s.Require().NoError(err)
	return t
}

func (s *StoreTestSuite) TestProjects() {
	got, err := s.db.GetProject(s.project.ID)
	s.Require().NoError(err)
	s.Equal("Roadmap", got.Title)
	s.Equal("next quarter", got.Description)
	s.False(got.CreatedAt.IsZero())

	s.Require().NoError(s.db.UpdateProject(s.project.ID, "Roadmap 2", ""))
	got, err = s.db.GetProject(s.project.ID)
	s.Require().NoError(err)
	s.Equal("Roadmap 2", got.Title)

	found, err := s.db.FindProject("roadmap 2")
	s.Require().NoError(err)
	s.Equal(s.project.ID, found.ID)

	_, err = s.db.FindProject("nope")
	s.ErrorIs(err, ErrNotFound)

	s.ErrorIs(s.db.UpdateProject("missing", "x", ""), ErrNotFound)
}

func (s *StoreTestSuite) TestDeleteProjectCascades() {
	g, err := s.db.CreateGroup(s.project.ID, "Design", "#ff0000")
	s.Require().NoError(err)
	t := s.createTask("Wireframes", day(2024, 1, 1), day(2024, 1, 3))

	s.Require().NoError(s.db.DeleteProject(s.project.ID))

	_, err = s.db.GetTask(t.ID)
	s.Error(err)
	_, err = s.db.GetGroup(g.ID)
	s.Error(err)

	projects, err := s.db.ListProjects()
	s.Require().NoError(err)
	s.Empty(projects)
}

func (s *StoreTestSuite) TestTaskRoundTrip() {
	progress := 40
	created, err := s.db.CreateTask(models.Task{
		ProjectID: s.project.ID,
		Title:     "Build",
		StartDate: day(2024, 3, 20),
		EndDate:   day(2024, 3, 25),
		Progress:  &progress,
		Color:     "#00ff00",
	})
	s.Require().NoError(err)
	s.NotEmpty(created.ID)

	got, err := s.db.GetTask(created.ID)
	s.Require().NoError(err)
	s.Equal("Build", got.Title)
	s.Equal(day(2024, 3, 20), got.StartDate)
	s.Equal(day(2024, 3, 25), got.EndDate)
	s.Require().NotNil(got.Progress)
	s.Equal(40, *got.Progress)
	s.Equal("#00ff00", got.Color)
	s.Nil(got.GroupID)
}

func (s *StoreTestSuite) TestListTasksKeepsInsertionOrder() {
	s.createTask("third by date", day(2024, 1, 10), day(2024, 1, 11))
	s.createTask("first by date", day(2024, 1, 1), day(2024, 1, 2))
	s.createTask("second by date", day(2024, 1, 5), day(2024, 1, 6))

	tasks, err := s.db.ListTasks(s.project.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 3)
	s.Equal("third by date", tasks[0].Title)
	s.Equal("first by date", tasks[1].Title)
	s.Equal("second by date", tasks[2].Title)
}

func (s *StoreTestSuite) TestUpdateTask() {
	t := s.createTask("Ship", day(2024, 1, 1), day(2024, 1, 3))

	t.StartDate = day(2024, 1, 2)
	t.EndDate = day(2024, 1, 9)
	s.Require().NoError(s.db.UpdateTask(*t))

	got, err := s.db.GetTask(t.ID)
	s.Require().NoError(err)
	s.Equal(day(2024, 1, 2), got.StartDate)
	s.Equal(day(2024, 1, 9), got.EndDate)
}

func (s *StoreTestSuite) TestUpdateTaskRejectsInvertedRange() {
	t := s.createTask("Ship", day(2024, 1, 1), day(2024, 1, 3))

	bad := *t
	bad.StartDate = day(2024, 1, 5)
	s.ErrorIs(s.db.UpdateTask(bad), models.ErrInvalidDateRange)

	got, err := s.db.GetTask(t.ID)
	s.Require().NoError(err)
	s.Equal(day(2024, 1, 1), got.StartDate, "stored task untouched")
	s.Equal(day(2024, 1, 3), got.EndDate)

	_, err = s.db.CreateTask(models.Task{
		ProjectID: s.project.ID,
		Title:     "backwards",
		StartDate: day(2024, 2, 2),
		EndDate:   day(2024, 2, 1),
	})
	s.ErrorIs(err, models.ErrInvalidDateRange)
}

func (s *StoreTestSuite) TestDeleteTask() {
	t := s.createTask("Ship", day(2024, 1, 1), day(2024, 1, 1))

	s.Require().NoError(s.db.DeleteTask(t.ID))
	s.ErrorIs(s.db.DeleteTask(t.ID), ErrNotFound)

	tasks, err := s.db.ListTasks(s.project.ID)
	s.Require().NoError(err)
	s.Empty(tasks)
}

func (s *StoreTestSuite) TestGroups() {
	a, err := s.db.CreateGroup(s.project.ID, "Alpha", "")
	s.Require().NoError(err)
	b, err := s.db.CreateGroup(s.project.ID, "Beta", "#123456")
	s.Require().NoError(err)
	s.True(a.Expanded)

	s.Require().NoError(s.db.SetGroupExpanded(b.ID, false))
	s.Require().NoError(s.db.UpdateGroup(a.ID, "Alpha 1", "#abcdef"))

	groups, err := s.db.ListGroups(s.project.ID)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal("Alpha 1", groups[0].Name)
	s.Equal("#abcdef", groups[0].Color)
	s.True(groups[0].Expanded)
	s.Equal("Beta", groups[1].Name)
	s.False(groups[1].Expanded)
}

func (s *StoreTestSuite) TestDeleteGroupUngroupsTasks() {
	g, err := s.db.CreateGroup(s.project.ID, "Design", "")
	s.Require().NoError(err)

	t := s.createTask("Mockups", day(2024, 1, 1), day(2024, 1, 2))
	t.GroupID = &g.ID
	s.Require().NoError(s.db.UpdateTask(*t))

	got, err := s.db.GetTask(t.ID)
	s.Require().NoError(err)
	s.True(got.InGroup(g.ID))

	s.Require().NoError(s.db.DeleteGroup(g.ID))

	got, err = s.db.GetTask(t.ID)
	s.Require().NoError(err)
	s.Nil(got.GroupID)
}

func (s *StoreTestSuite) TestSettings() {
	v, err := s.db.GetSetting("last_project")
	s.Require().NoError(err)
	s.Empty(v)

	s.Require().NoError(s.db.SetSetting("last_project", "a"))
	s.Require().NoError(s.db.SetSetting("last_project", "b"))

	v, err = s.db.GetSetting("last_project")
	s.Require().NoError(err)
	s.Equal("b", v)
}

func (s *StoreTestSuite) TestImportProject() {
	groupID := "old-group"
	missing := "gone"
	imported, err := s.db.ImportProject(
		models.Project{ID: "old", Title: "Imported"},
		[]models.Group{{ID: groupID, Name: "Phase 1", Expanded: true}},
		[]models.Task{
			{ID: "t1", Title: "In group", GroupID: &groupID, StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 4)},
			{ID: "t2", Title: "Dangling", GroupID: &missing, StartDate: day(2024, 1, 2), EndDate: day(2024, 1, 2)},
		},
	)
	s.Require().NoError(err)
	s.NotEqual("old", imported.ID)
	s.Equal("Imported", imported.Title)

	groups, err := s.db.ListGroups(imported.ID)
	s.Require().NoError(err)
	s.Require().Len(groups, 1)
	s.NotEqual(groupID, groups[0].ID)

	tasks, err := s.db.ListTasks(imported.ID)
	s.Require().NoError(err)
	s.Require().Len(tasks, 2)
	s.True(tasks[0].InGroup(groups[0].ID))
	s.Nil(tasks[1].GroupID)
	s.Equal(day(2024, 1, 4), tasks[0].EndDate)
}

func (s *StoreTestSuite) TestImportProjectKeepsGroupCreation() {
	created := time.Date(2023, 11, 5, 9, 15, 0, 0, time.UTC)
	imported, err := s.db.ImportProject(
		models.Project{Title: "Dated"},
		[]models.Group{
			{ID: "a", Name: "Old", CreatedAt: created},
			{ID: "b", Name: "Undated"},
		},
		nil,
	)
	s.Require().NoError(err)

	groups, err := s.db.ListGroups(imported.ID)
	s.Require().NoError(err)
	s.Require().Len(groups, 2)
	s.Equal("Old", groups[0].Name)
	s.True(groups[0].CreatedAt.Equal(created), "got %v", groups[0].CreatedAt)
	s.False(groups[1].CreatedAt.IsZero())
	s.True(groups[1].CreatedAt.After(created))
}

func (s *StoreTestSuite) TestImportProjectIsAtomic() {
	_, err := s.db.ImportProject(
		models.Project{Title: "Broken"},
		nil,
		[]models.Task{
			{Title: "ok", StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 2)},
			{Title: "bad", StartDate: day(2024, 1, 5), EndDate: day(2024, 1, 2)},
		},
	)
	s.ErrorIs(err, models.ErrInvalidDateRange)

	projects, err := s.db.ListProjects()
	s.Require().NoError(err)
	s.Len(projects, 1, "only the suite's own project")
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
