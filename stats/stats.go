// Package stats records per-post daily view counts in a separate SQLite
// database and feeds totals to the admin dashboard.
package stats

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for view counts.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the stats database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure stats schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS post_views (
    post_id INTEGER NOT NULL,
    day TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (post_id, day)
);
`)
	return err
}

// Record counts one view of the post for today.
func (s *Store) Record(postID int64) error {
	day := time.Now().UTC().Format("2006-01-02")
	_, err := s.db.Exec(`INSERT INTO post_views (post_id, day, views) VALUES (?, ?, 1)
		ON CONFLICT (post_id, day) DO UPDATE SET views = views + 1`, postID, day)
	return err
}

// Totals returns the all-time view count per post.
func (s *Store) Totals() (map[int64]int, error) {
	rows, err := s.db.Query(`SELECT post_id, SUM(views) FROM post_views GROUP BY post_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[int64]int)
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		totals[id] = n
	}
	return totals, rows.Err()
}

// Prune drops per-day rows older than keepDays, preserving nothing but the
// recent window. Totals shrink accordingly; the dashboard treats them as a
// rolling figure once pruning is enabled.
func (s *Store) Prune(keepDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -keepDays).Format("2006-01-02")
	_, err := s.db.Exec(`DELETE FROM post_views WHERE day < ?`, cutoff)
	return err
}
