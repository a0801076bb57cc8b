// Package history keeps a local record of every file ever copied, so
// later runs can skip media that already made it off the device even when
// the destination folder has been reorganized.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS transfers (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	remote_path TEXT    NOT NULL,
	local_path  TEXT    NOT NULL,
	size        INTEGER NOT NULL,
	copied_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_transfers_remote ON transfers(remote_path, size);
`

// Entry is one recorded copy
type Entry struct {
	RemotePath string
	LocalPath  string
	Size       int64
	CopiedAt   time.Time
}

// Store is a sqlite-backed transfer log. Safe for concurrent use through
// database/sql's connection pool.
type Store struct {
	db *sql.DB
}

// DefaultPath is where both the desktop app and the CLI keep the shared
// history database, so a file transferred through one is skipped by the
// other
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "iautotransfer-history.db"
	}
	return filepath.Join(configDir, "iautotransfer", "history.db")
}

// Open opens or creates the history database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record logs one successful copy
func (s *Store) Record(remotePath, localPath string, size int64) error {
	_, err := s.db.Exec(
		`INSERT INTO transfers (remote_path, local_path, size) VALUES (?, ?, ?)`,
		remotePath, localPath, size,
	)
	return err
}

// Seen reports whether a file with this remote path and size was ever
// copied. Size is part of the key because iOS reuses IMG_NNNN names after
// deletions.
func (s *Store) Seen(remotePath string, size int64) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(1) FROM transfers WHERE remote_path = ? AND size = ?`,
		remotePath, size,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of recorded copies
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(1) FROM transfers`).Scan(&n)
	return n, err
}

// Recent returns the latest entries, newest first
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT remote_path, local_path, size, copied_at
		 FROM transfers ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RemotePath, &e.LocalPath, &e.Size, &e.CopiedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
