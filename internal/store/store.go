// Package store persists terminal sessions and site metrics in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a session has never been saved.
var ErrNotFound = errors.New("store: not found")

// timeLayout is how timestamps are written; it sorts lexically and is
// understood by SQLite's date functions.
const timeLayout = "2006-01-02 15:04:05"

// RecallLimit caps the saved command recall list per session.
const RecallLimit = 100

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	theme TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	entry_id TEXT NOT NULL,
	command TEXT NOT NULL,
	PRIMARY KEY (session_id, position)
);
CREATE TABLE IF NOT EXISTS recall (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	command TEXT NOT NULL,
	PRIMARY KEY (session_id, position)
);
CREATE TABLE IF NOT EXISTS command_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	command TEXT NOT NULL,
	at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,  -- never the raw address
	user_agent TEXT,
	path TEXT,
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);
CREATE INDEX IF NOT EXISTS idx_command_log_command ON command_log(command);
`

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the SQLite database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps writes serialised and an in-memory database shared.
	db.SetMaxOpenConns(1)

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened database.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(v string) time.Time {
	t, err := time.ParseInLocation(timeLayout, v, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
