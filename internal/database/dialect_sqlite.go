package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteDialect is the local development backend: the "base address"
// is a file path and the access key is unused.
type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(s Settings) string {
	// Ensure the parent directory exists for paths like ./data/app.db.
	if dir := filepath.Dir(s.URL); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	return s.URL + "?_busy_timeout=5000&_journal_mode=WAL"
}

func (sqliteDialect) RewriteQuery(query string) string { return query }

func (sqliteDialect) SupportsLastInsertID() bool { return true }

func (sqliteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return err
	}
	return nil
}
