package timeline

import "github.com/tgienger/gantt/internal/models"

// Row is one vertical slot of the chart: a GroupRow or a TaskRow.
type Row interface {
	Index() int
	isRow()
}

// GroupRow is a group header
type GroupRow struct {
	Group    models.Group
	RowIndex int
	Members  int
}

// TaskRow is a task bar. GroupID is empty for ungrouped tasks.
type TaskRow struct {
	Task     models.Task
	RowIndex int
	GroupID  string
}

func (r GroupRow) Index() int { return r.RowIndex }
func (r TaskRow) Index() int  { return r.RowIndex }

func (GroupRow) isRow() {}
func (TaskRow) isRow()  {}

// Organize orders tasks under their groups. Groups keep their given order,
// each followed by its members in task-list order; ungrouped tasks and tasks
// whose group is unknown come last without a header. Empty groups still get
// a header row.
func Organize(tasks []models.Task, groups []models.Group) []Row {
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}

	members := make(map[string][]models.Task, len(groups))
	var ungrouped []models.Task
	for _, t := range tasks {
		if t.GroupID != nil && known[*t.GroupID] {
			members[*t.GroupID] = append(members[*t.GroupID], t)
			continue
		}
		ungrouped = append(ungrouped, t)
	}

	rows := make([]Row, 0, len(tasks)+len(groups))
	emitted := make(map[string]bool, len(groups))
	for _, g := range groups {
		if emitted[g.ID] {
			continue
		}
		emitted[g.ID] = true

		rows = append(rows, GroupRow{Group: g, RowIndex: len(rows), Members: len(members[g.ID])})
		for _, t := range members[g.ID] {
			rows = append(rows, TaskRow{Task: t, RowIndex: len(rows), GroupID: g.ID})
		}
	}
	for _, t := range ungrouped {
		rows = append(rows, TaskRow{Task: t, RowIndex: len(rows)})
	}
	return rows
}

// Collapse drops the member rows of collapsed groups and renumbers the rest
func Collapse(rows []Row) []Row {
	collapsed := make(map[string]bool)
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		switch r := r.(type) {
		case GroupRow:
			if !r.Group.Expanded {
				collapsed[r.Group.ID] = true
			}
			r.RowIndex = len(out)
			out = append(out, r)
		case TaskRow:
			if r.GroupID != "" && collapsed[r.GroupID] {
				continue
			}
			r.RowIndex = len(out)
			out = append(out, r)
		}
	}
	return out
}

// Tasks returns the tasks of the task rows in row order
func Tasks(rows []Row) []models.Task {
	var tasks []models.Task
	for _, r := range rows {
		if tr, ok := r.(TaskRow); ok {
			tasks = append(tasks, tr.Task)
		}
	}
	return tasks
}
