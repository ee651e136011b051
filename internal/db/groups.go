package db

import (
	"github.com/google/uuid"
	"github.com/tgienger/gantt/internal/models"
)

// CreateGroup creates a new, expanded group in a project
func (db *DB) CreateGroup(projectID, name, color string) (*models.Group, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO task_groups (id, project_id, name, color) VALUES (?, ?, ?, ?)
	`, id, projectID, name, color)
	if err != nil {
		return nil, err
	}

	return db.GetGroup(id)
}

// GetGroup retrieves a group by ID
func (db *DB) GetGroup(id string) (*models.Group, error) {
	g := &models.Group{}
	err := db.QueryRow(`
		SELECT id, project_id, name, color, expanded, created_at
		FROM task_groups WHERE id = ?
	`, id).Scan(&g.ID, &g.ProjectID, &g.Name, &g.Color, &g.Expanded, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ListGroups returns the groups of a project in creation order
func (db *DB) ListGroups(projectID string) ([]models.Group, error) {
	rows, err := db.Query(`
		SELECT id, project_id, name, color, expanded, created_at
		FROM task_groups
		WHERE project_id = ?
		ORDER BY created_at, rowid
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.Name, &g.Color, &g.Expanded, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// UpdateGroup renames and recolors a group
func (db *DB) UpdateGroup(id, name, color string) error {
	res, err := db.Exec(`
		UPDATE task_groups SET name = ?, color = ? WHERE id = ?
	`, name, color, id)
	if err != nil {
		return err
	}
	return affected(res, "group", id)
}

// SetGroupExpanded stores whether a group's tasks are shown
func (db *DB) SetGroupExpanded(id string, expanded bool) error {
	res, err := db.Exec("UPDATE task_groups SET expanded = ? WHERE id = ?", expanded, id)
	if err != nil {
		return err
	}
	return affected(res, "group", id)
}

// DeleteGroup deletes a group. Its tasks stay in the project, ungrouped.
func (db *DB) DeleteGroup(id string) error {
	res, err := db.Exec("DELETE FROM task_groups WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "group", id)
}
