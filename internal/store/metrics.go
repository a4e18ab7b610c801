package store

import (
	"context"
	"fmt"
	"time"
)

// Visit is a privacy-conscious page view: the address is hashed before it
// reaches the store.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type CommandStat struct {
	Command string `json:"command"`
	Count   int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	TotalSessions    int64         `json:"total_sessions"`
	TotalCommands    int64         `json:"total_commands"`
	TopCommands      []CommandStat `json:"top_commands"`
	RecentVisitors   []Visit       `json:"recent_visitors"`
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	at := v.Timestamp
	if at.IsZero() {
		at = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, formatTime(at))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// LogCommand counts one use of a command word.
func (s *Store) LogCommand(ctx context.Context, command string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO command_log (command, at) VALUES (?, ?)`, command, formatTime(s.now()))
	if err != nil {
		return fmt.Errorf("log command: %w", err)
	}
	return nil
}

// CleanupVisitors removes visitor rows older than before.
func (s *Store) CleanupVisitors(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = parseTime(ts)
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Stats gathers the admin dashboard numbers as of now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(day)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{formatTime(now.Add(-7 * 24 * time.Hour))}},
		{&stats.TotalSessions, `SELECT COUNT(*) FROM sessions`, nil},
		{&stats.TotalCommands, `SELECT COUNT(*) FROM command_log`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	// Rows must be closed before the next query: the pool holds one connection.
	if stats.TopCommands, err = s.topCommands(ctx, 10); err != nil {
		return nil, err
	}
	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) topCommands(ctx context.Context, limit int) ([]CommandStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT command, COUNT(*) AS uses
		FROM command_log
		GROUP BY command
		ORDER BY uses DESC, command ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top commands: %w", err)
	}
	defer rows.Close()

	var out []CommandStat
	for rows.Next() {
		var cs CommandStat
		if err := rows.Scan(&cs.Command, &cs.Count); err != nil {
			return nil, fmt.Errorf("scan command stat: %w", err)
		}
		out = append(out, cs)
	}
	return out, rows.Err()
}
