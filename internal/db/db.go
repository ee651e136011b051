package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// dayLayout is how task dates are stored
const dayLayout = "2006-01-02"

var (
	// ErrStoreUnavailable is returned when the database cannot be opened or initialized
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound is returned when an update or delete matches no row
	ErrNotFound = errors.New("not found")
)

// DB wraps the database connection
type DB struct {
	*sql.DB
	loc *time.Location
}

// New opens the database at path, or at the default data location when path
// is empty, creating parent directories as needed.
func New(path string) (*DB, error) {
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		path = p
	} else if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return Open(path)
}

// Open opens the database at path and initializes the schema. Use ":memory:"
// for a throwaway store.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	// one connection keeps ":memory:" databases shared and serializes writers
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &DB{DB: conn, loc: time.Local}, nil
}

// SetLocation sets the zone task dates are read back in
func (db *DB) SetLocation(loc *time.Location) {
	if loc != nil {
		db.loc = loc
	}
}

// defaultPath returns the path to the database file under the XDG data directory
func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "gantt")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, "gantt.db"), nil
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (db *DB) formatDay(t time.Time) string {
	return t.In(db.loc).Format(dayLayout)
}

func (db *DB) parseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dayLayout, s, db.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored date %q: %w", s, err)
	}
	return t, nil
}

// affected maps a zero-row update or delete to ErrNotFound
func affected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wrapNotFound(what, id)
	}
	return nil
}

func wrapNotFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
}
