// Package store keeps the list of recently opened sequence files in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultMaxRecent is used when New is given a non-positive limit.
const DefaultMaxRecent = 10

// timeLayout is fixed width so stored timestamps sort as text. The column
// is TEXT so the driver hands the string back unchanged.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a path is not in the recent list.
var ErrNotFound = errors.New("recent file not found")

// RecentFile is one entry of the recent list.
type RecentFile struct {
	Path     string
	OpenedAt time.Time
}

// SQLite stores recent files in a SQLite database.
type SQLite struct {
	db        *sql.DB
	maxRecent int
	now       func() time.Time
}

// New opens the database at path, creating its directory, and runs migrations.
// The recent list is trimmed to maxRecent entries.
func New(path string, maxRecent int) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	s := &SQLite{db: db, maxRecent: maxRecent, now: time.Now}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Touch moves path to the front of the recent list, adding it if missing.
// Paths are stored absolute so the same file opened from different
// directories is one entry.
func (s *SQLite) Touch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO recent_files (path, opened_at) VALUES (?, ?)
		ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at
	`
	if _, err := tx.ExecContext(ctx, query, abs, s.now().UTC().Format(timeLayout)); err != nil {
		return fmt.Errorf("recording recent file: %w", err)
	}

	trim := `
		DELETE FROM recent_files WHERE path NOT IN (
			SELECT path FROM recent_files ORDER BY opened_at DESC, path LIMIT ?
		)
	`
	if _, err := tx.ExecContext(ctx, trim, s.maxRecent); err != nil {
		return fmt.Errorf("trimming recent files: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Recent returns the recent files, newest first.
func (s *SQLite) Recent(ctx context.Context) ([]RecentFile, error) {
	query := `SELECT path, opened_at FROM recent_files ORDER BY opened_at DESC, path LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, s.maxRecent)
	if err != nil {
		return nil, fmt.Errorf("querying recent files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []RecentFile
	for rows.Next() {
		var (
			f        RecentFile
			openedAt string
		)
		if err := rows.Scan(&f.Path, &openedAt); err != nil {
			return nil, fmt.Errorf("scanning recent file: %w", err)
		}
		f.OpenedAt, err = time.Parse(timeLayout, openedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing opened at: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent files: %w", err)
	}

	return files, nil
}

// Remove deletes path from the recent list.
func (s *SQLite) Remove(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM recent_files WHERE path = ?`, abs)
	if err != nil {
		return fmt.Errorf("removing recent file: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return nil
}

// Clear empties the recent list.
func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_files`); err != nil {
		return fmt.Errorf("clearing recent files: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}
