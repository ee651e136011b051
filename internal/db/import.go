package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tgienger/gantt/internal/models"
)

// ImportProject stores a project with its groups and tasks in one
// transaction. Everything gets fresh IDs; task group references are remapped
// and references to groups outside the set are dropped.
func (db *DB) ImportProject(p models.Project, groups []models.Group, tasks []models.Task) (*models.Project, error) {
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	projectID := uuid.NewString()
	if _, err := tx.Exec(`
		INSERT INTO projects (id, title, description) VALUES (?, ?, ?)
	`, projectID, p.Title, p.Description); err != nil {
		return nil, fmt.Errorf("import project: %w", err)
	}

	groupIDs := make(map[string]string, len(groups))
	for _, g := range groups {
		if _, dup := groupIDs[g.ID]; dup {
			continue
		}
		id := uuid.NewString()
		groupIDs[g.ID] = id
		if _, err := tx.Exec(`
			INSERT INTO task_groups (id, project_id, name, color, expanded, created_at)
			VALUES (?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))
		`, id, projectID, g.Name, g.Color, g.Expanded, nullTime(g.CreatedAt)); err != nil {
			return nil, fmt.Errorf("import group %q: %w", g.Name, err)
		}
	}

	for _, t := range tasks {
		var groupID *string
		if t.GroupID != nil {
			if id, ok := groupIDs[*t.GroupID]; ok {
				groupID = &id
			}
		}
		if _, err := tx.Exec(`
			INSERT INTO tasks (id, project_id, group_id, title, start_date, end_date, progress, color)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), projectID, nullString(groupID), t.Title,
			db.formatDay(t.StartDate), db.formatDay(t.EndDate), nullInt(t.Progress), t.Color); err != nil {
			return nil, fmt.Errorf("import task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return db.GetProject(projectID)
}

// nullTime leaves zero timestamps to the column default
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
