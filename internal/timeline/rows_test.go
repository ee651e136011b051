package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/gantt/internal/models"
)

func grouped(id, groupID string) models.Task {
	t := task(id, day(2024, 1, 1), day(2024, 1, 2))
	if groupID != "" {
		t.GroupID = &groupID
	}
	return t
}

func rowIDs(rows []Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		switch r := r.(type) {
		case GroupRow:
			ids[i] = r.Group.ID
		case TaskRow:
			ids[i] = r.Task.ID
		}
	}
	return ids
}

func TestOrganize(t *testing.T) {
	groups := []models.Group{
		{ID: "G1", Name: "First", Expanded: true},
		{ID: "G2", Name: "Second", Expanded: true},
	}
	tasks := []models.Task{
		grouped("T1", "G1"),
		grouped("T2", ""),
		grouped("T3", "G2"),
		grouped("T4", "G1"),
	}

	rows := Organize(tasks, groups)

	assert.Equal(t, []string{"G1", "T1", "T4", "G2", "T3", "T2"}, rowIDs(rows))
	for i, r := range rows {
		assert.Equal(t, i, r.Index())
	}

	g1, ok := rows[0].(GroupRow)
	require.True(t, ok)
	assert.Equal(t, 2, g1.Members)

	t2, ok := rows[5].(TaskRow)
	require.True(t, ok)
	assert.Empty(t, t2.GroupID)

	assert.Equal(t, []string{"T1", "T4", "T3", "T2"}, taskIDs(Tasks(rows)))
}

func TestOrganize_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		tasks  []models.Task
		groups []models.Group
		want   []string
	}{
		{
			name: "empty input",
			want: []string{},
		},
		{
			name:   "empty group keeps its header",
			tasks:  []models.Task{grouped("T1", "")},
			groups: []models.Group{{ID: "G1"}},
			want:   []string{"G1", "T1"},
		},
		{
			name:   "unknown group falls back to ungrouped",
			tasks:  []models.Task{grouped("T1", "missing"), grouped("T2", "G1")},
			groups: []models.Group{{ID: "G1"}},
			want:   []string{"G1", "T2", "T1"},
		},
		{
			name:  "no groups at all",
			tasks: []models.Task{grouped("T1", "G1"), grouped("T2", "")},
			want:  []string{"T1", "T2"},
		},
		{
			name:   "duplicate group listed once",
			tasks:  []models.Task{grouped("T1", "G1")},
			groups: []models.Group{{ID: "G1"}, {ID: "G1"}},
			want:   []string{"G1", "T1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rowIDs(Organize(tt.tasks, tt.groups)))
		})
	}
}

func TestCollapse(t *testing.T) {
	groups := []models.Group{
		{ID: "G1", Expanded: false},
		{ID: "G2", Expanded: true},
	}
	tasks := []models.Task{
		grouped("T1", "G1"),
		grouped("T2", ""),
		grouped("T3", "G2"),
		grouped("T4", "G1"),
	}

	rows := Collapse(Organize(tasks, groups))

	assert.Equal(t, []string{"G1", "G2", "T3", "T2"}, rowIDs(rows))
	for i, r := range rows {
		assert.Equal(t, i, r.Index())
	}
	assert.Equal(t, 2, rows[0].(GroupRow).Members, "collapsed header still counts its members")
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
