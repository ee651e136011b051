// Package export reads and writes projects as portable JSON documents.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/tgienger/gantt/internal/calendar"
	"github.com/tgienger/gantt/internal/models"
)

// Version is the document format written by Write
const Version = "1.0"

const dayLayout = "2006-01-02"

// ErrUnsupportedVersion is returned by Read for documents of another major version
var ErrUnsupportedVersion = errors.New("unsupported document version")

// Document is one exported project
type Document struct {
	Version    string
	ExportDate time.Time
	Project    models.Project
	Groups     []models.Group
	Tasks      []models.Task
}

type document struct {
	Version    string    `json:"version"`
	ExportDate time.Time `json:"exportDate"`
	Project    project   `json:"project"`
	Groups     []group   `json:"groups"`
	Tasks      []task    `json:"tasks"`
}

type project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	Expanded  bool      `json:"expanded"`
	CreatedAt time.Time `json:"createdAt"`
}

type task struct {
	ID        string  `json:"id"`
	GroupID   *string `json:"groupId,omitempty"`
	Title     string  `json:"title"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Progress  *int    `json:"progress,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// Build assembles a document with tasks ordered by start date. Tasks that
// start on the same day keep their relative order.
func Build(p models.Project, tasks []models.Task, groups []models.Group, now time.Time) Document {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b models.Task) int {
		return a.StartDate.Compare(b.StartDate)
	})

	return Document{
		Version:    Version,
		ExportDate: now,
		Project:    p,
		Groups:     slices.Clone(groups),
		Tasks:      sorted,
	}
}

// Write encodes doc as indented JSON
func Write(w io.Writer, doc Document) error {
	out := document{
		Version:    doc.Version,
		ExportDate: doc.ExportDate.UTC(),
		Project: project{
			ID:          doc.Project.ID,
			Title:       doc.Project.Title,
			Description: doc.Project.Description,
			CreatedAt:   doc.Project.CreatedAt.UTC(),
			UpdatedAt:   doc.Project.UpdatedAt.UTC(),
		},
		Groups: make([]group, 0, len(doc.Groups)),
		Tasks:  make([]task, 0, len(doc.Tasks)),
	}
	if out.Version == "" {
		out.Version = Version
	}

	for _, g := range doc.Groups {
		out.Groups = append(out.Groups, group{
			ID:        g.ID,
			Name:      g.Name,
			Color:     g.Color,
			Expanded:  g.Expanded,
			CreatedAt: g.CreatedAt.UTC(),
		})
	}
	for _, t := range doc.Tasks {
		out.Tasks = append(out.Tasks, task{
			ID:        t.ID,
			GroupID:   t.GroupID,
			Title:     t.Title,
			StartDate: t.StartDate.Format(dayLayout),
			EndDate:   t.EndDate.Format(dayLayout),
			Progress:  t.Progress,
			Color:     t.Color,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Read decodes a document, placing task days in the calendar's location.
// Unknown group references are dropped so the task imports ungrouped.
func Read(r io.Reader, cal calendar.Calendar) (Document, error) {
	var in document
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}

	if in.Version != "1" && !strings.HasPrefix(in.Version, "1.") {
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, in.Version)
	}
	if strings.TrimSpace(in.Project.Title) == "" {
		return Document{}, errors.New("document has no project title")
	}

	doc := Document{
		Version:    in.Version,
		ExportDate: in.ExportDate,
		Project: models.Project{
			ID:          in.Project.ID,
			Title:       in.Project.Title,
			Description: in.Project.Description,
			CreatedAt:   in.Project.CreatedAt,
			UpdatedAt:   in.Project.UpdatedAt,
		},
	}

	known := make(map[string]bool, len(in.Groups))
	for _, g := range in.Groups {
		known[g.ID] = true
		doc.Groups = append(doc.Groups, models.Group{
			ID:        g.ID,
			ProjectID: in.Project.ID,
			Name:      g.Name,
			Color:     g.Color,
			Expanded:  g.Expanded,
			CreatedAt: g.CreatedAt,
		})
	}

	for i, t := range in.Tasks {
		start, err := cal.ParseDay(t.StartDate)
		if err != nil {
			return Document{}, fmt.Errorf("task %d %q start: %w", i, t.Title, err)
		}
		end, err := cal.ParseDay(t.EndDate)
		if err != nil {
			return Document{}, fmt.Errorf("task %d %q end: %w", i, t.Title, err)
		}

		m := models.Task{
			ID:        t.ID,
			ProjectID: in.Project.ID,
			Title:     t.Title,
			StartDate: start,
			EndDate:   end,
			Progress:  t.Progress,
			Color:     t.Color,
		}
		if t.GroupID != nil && known[*t.GroupID] {
			m.GroupID = t.GroupID
		}
		if err := m.Validate(); err != nil {
			return Document{}, err
		}
		doc.Tasks = append(doc.Tasks, m)
	}

	return doc, nil
}
