// Package history records launched items in SQLite so the launcher can
// surface a "recent" row.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS launches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		target TEXT NOT NULL,
		name TEXT NOT NULL,
		launched_at DATETIME NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	);
	CREATE INDEX IF NOT EXISTS idx_launches_target ON launches(target);
	CREATE INDEX IF NOT EXISTS idx_launches_launched_at ON launches(launched_at);
`

// Entry is one recorded launch.
type Entry struct {
	Type       string
	Target     string
	Name       string
	LaunchedAt time.Time
}

// Store is a SQLite-backed launch history.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores a launch.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.LaunchedAt.IsZero() {
		e.LaunchedAt = time.Now().UTC()
	}
	err := execWithBusyRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO launches (type, target, name, launched_at) VALUES (?, ?, ?, ?)`,
			e.Type, e.Target, e.Name, e.LaunchedAt.Format(time.RFC3339Nano))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to record launch: %w", err)
	}
	return nil
}

// Recent returns up to n most recently launched items, newest first and
// deduplicated by target.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, target, name, MAX(launched_at) AS last
		FROM launches
		GROUP BY target
		ORDER BY last DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent launches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var launchedAt string
		if err := rows.Scan(&e.Type, &e.Target, &e.Name, &launchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan launch row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, launchedAt); err == nil {
			e.LaunchedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune drops all but the newest keep rows.
func (s *Store) Prune(ctx context.Context, keep int) error {
	err := execWithBusyRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			DELETE FROM launches WHERE id NOT IN (
				SELECT id FROM launches ORDER BY launched_at DESC LIMIT ?
			)`, keep)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func isSQLiteBusyError(err error) bool {
	if err == nil {
		return false
	}
	// String match keeps us decoupled from driver error types.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlite_busy") || strings.Contains(msg, "database is locked")
}

func execWithBusyRetry(ctx context.Context, fn func() error) error {
	backoff := 30 * time.Millisecond
	for {
		err := fn()
		if err == nil || !isSQLiteBusyError(err) {
			return err
		}
		if ctx != nil && ctx.Err() != nil {
			return err
		}

		wait := backoff
		if wait > 500*time.Millisecond {
			wait = 500 * time.Millisecond
		}
		timer := time.NewTimer(wait)
		if ctx != nil {
			select {
			case <-ctx.Done():
				timer.Stop()
				return err
			case <-timer.C:
			}
		} else {
			<-timer.C
		}

		backoff *= 2
	}
}
