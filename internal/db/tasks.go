package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/tgienger/gantt/internal/models"
)

const taskColumns = `id, project_id, group_id, title, start_date, end_date, progress, color, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// CreateTask stores a new task for t.ProjectID. The ID and timestamps of t
// are ignored.
func (db *DB) CreateTask(t models.Task) (*models.Task, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO tasks (id, project_id, group_id, title, start_date, end_date, progress, color)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, t.ProjectID, nullString(t.GroupID), t.Title,
		db.formatDay(t.StartDate), db.formatDay(t.EndDate), nullInt(t.Progress), t.Color)
	if err != nil {
		return nil, err
	}

	if err := db.touchProject(t.ProjectID); err != nil {
		return nil, err
	}
	return db.GetTask(id)
}

// GetTask retrieves a task by ID
func (db *DB) GetTask(id string) (*models.Task, error) {
	row := db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := db.scanTask(row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTasks returns the tasks of a project in insertion order
func (db *DB) ListTasks(projectID string) ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE project_id = ?
		ORDER BY created_at, rowid
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := db.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateTask writes the title, group, dates, progress and color of t.
// Inverted date ranges are rejected with models.ErrInvalidDateRange and
// leave the stored task untouched.
func (db *DB) UpdateTask(t models.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}

	res, err := db.Exec(`
		UPDATE tasks
		SET group_id = ?, title = ?, start_date = ?, end_date = ?, progress = ?, color = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, nullString(t.GroupID), t.Title, db.formatDay(t.StartDate), db.formatDay(t.EndDate),
		nullInt(t.Progress), t.Color, t.ID)
	if err != nil {
		return err
	}
	if err := affected(res, "task", t.ID); err != nil {
		return err
	}
	return db.touchProject(t.ProjectID)
}

// DeleteTask deletes a task
func (db *DB) DeleteTask(id string) error {
	res, err := db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affected(res, "task", id)
}

func (db *DB) scanTask(s scanner) (models.Task, error) {
	var (
		t          models.Task
		groupID    sql.NullString
		progress   sql.NullInt64
		start, end string
	)
	err := s.Scan(&t.ID, &t.ProjectID, &groupID, &t.Title, &start, &end, &progress, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}

	if t.StartDate, err = db.parseDay(start); err != nil {
		return t, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if t.EndDate, err = db.parseDay(end); err != nil {
		return t, fmt.Errorf("task %s: %w", t.ID, err)
	}
	if groupID.Valid {
		id := groupID.String
		t.GroupID = &id
	}
	if progress.Valid {
		p := int(progress.Int64)
		t.Progress = &p
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
