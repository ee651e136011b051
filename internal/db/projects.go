package db

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tgienger/gantt/internal/models"
)

// CreateProject creates a new project
func (db *DB) CreateProject(title, description string) (*models.Project, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO projects (id, title, description) VALUES (?, ?, ?)
	`, id, title, description)
	if err != nil {
		return nil, err
	}

	return db.GetProject(id)
}

// GetProject retrieves a project by ID
func (db *DB) GetProject(id string) (*models.Project, error) {
	p := &models.Project{}
	err := db.QueryRow(`
		SELECT id, title, description, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindProject looks a project up by ID, then by case-insensitive title
func (db *DB) FindProject(ref string) (*models.Project, error) {
	if p, err := db.GetProject(ref); err == nil {
		return p, nil
	}

	projects, err := db.ListProjects()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if strings.EqualFold(projects[i].Title, ref) {
			return &projects[i], nil
		}
	}
	return nil, wrapNotFound("project", ref)
}

// ListProjects returns all projects, most recently updated first
func (db *DB) ListProjects() ([]models.Project, error) {
	rows, err := db.Query(`
		SELECT id, title, description, created_at, updated_at
		FROM projects ORDER BY updated_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject updates a project
func (db *DB) UpdateProject(id, title, description string) error {
	res, err := db.Exec(`
		UPDATE projects SET title = ?, description = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, title, description, id)
	if err != nil {
		return err
	}
	return affected(res, "project", id)
}

// touchProject bumps a project to the top of the list
func (db *DB) touchProject(id string) error {
	_, err := db.Exec("UPDATE projects SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", id)
	return err
}

// DeleteProject deletes a project with all its groups and tasks
func (db *DB) DeleteProject(id string) error {
	res, err := db.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "project", id)
}
