package store

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS recent_files (
			path      TEXT PRIMARY KEY,
			opened_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recent_files_opened ON recent_files(opened_at);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating recent_files table: %w", err)
	}

	return nil
}
