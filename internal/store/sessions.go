package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// HistoryItem is the saved form of a terminal entry. Outputs are not saved;
// a restored session only needs to know that there was history.
type HistoryItem struct {
	ID      string `json:"id"`
	Command string `json:"command"`
}

type SessionRecord struct {
	ID        string
	Theme     string
	History   []HistoryItem
	Recall    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoadSession returns the saved session, or ErrNotFound.
func (s *Store) LoadSession(ctx context.Context, id string) (*SessionRecord, error) {
	rec := &SessionRecord{ID: id}
	var created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme, created_at, updated_at FROM sessions WHERE id = ?`, id,
	).Scan(&rec.Theme, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec.CreatedAt = parseTime(created)
	rec.UpdatedAt = parseTime(updated)

	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, command FROM history WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.ID, &item.Command); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.History = append(rec.History, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT command FROM recall WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load recall: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, fmt.Errorf("scan recall: %w", err)
		}
		rec.Recall = append(rec.Recall, cmd)
	}
	return rec, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) touch(ctx context.Context, db execer, id string) error {
	now := formatTime(s.now())
	_, err := db.ExecContext(ctx, `
		INSERT INTO sessions (id, theme, created_at, updated_at) VALUES (?, '', ?, ?)
		ON CONFLICT(id) DO UPDATE SET updated_at = excluded.updated_at`,
		id, now, now)
	return err
}

// SaveTheme records the theme chosen in a session.
func (s *Store) SaveTheme(ctx context.Context, id, theme string) error {
	now := formatTime(s.now())
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, theme, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at`,
		id, theme, now, now)
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// SaveHistory replaces the saved history of a session.
func (s *Store) SaveHistory(ctx context.Context, id string, items []HistoryItem) error {
	return s.replace(ctx, id, "history", func(tx *sql.Tx) error {
		for i, item := range items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO history (session_id, position, entry_id, command) VALUES (?, ?, ?, ?)`,
				id, i, item.ID, item.Command); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveRecall replaces the saved recall list of a session, keeping the most
// recent RecallLimit commands.
func (s *Store) SaveRecall(ctx context.Context, id string, commands []string) error {
	if len(commands) > RecallLimit {
		commands = commands[len(commands)-RecallLimit:]
	}
	return s.replace(ctx, id, "recall", func(tx *sql.Tx) error {
		for i, cmd := range commands {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recall (session_id, position, command) VALUES (?, ?, ?)`,
				id, i, cmd); err != nil {
				return err
			}
		}
		return nil
	})
}

// replace clears table rows of a session and refills them in one transaction.
func (s *Store) replace(ctx context.Context, id, table string, fill func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	defer tx.Rollback()

	if err := s.touch(ctx, tx, id); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	if err := fill(tx); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}

// PruneSessions deletes sessions untouched since before.
func (s *Store) PruneSessions(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE updated_at < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}
