// internal/database/database.go
//
// Connection handling for the hosted relational store.
// Responsibilities:
//   - Open the store from a driver name + base address + access key.
//   - Wrap *sql.DB with dialect-aware query rewriting so repositories
//     can write `?` placeholders regardless of backend.
//   - Provide insert-returning-id across backends.
//
// The handle is constructed once at process start and injected into the
// store layer; there is no ambient global client.

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Settings locates and authenticates against the store.
type Settings struct {
	// Driver selects the dialect: "postgres", "mysql" or "sqlite3".
	Driver string
	// URL is the base address: a keyword/value DSN for postgres, a DSN
	// for mysql, or a file path for sqlite3.
	URL string
	// Key is the access key, folded into the DSN where the dialect
	// supports it (password for postgres; ignored for sqlite3, whose
	// "key" is filesystem access).
	Key string
}

// DB wraps the store connection with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the store and verifies the connection.
func Open(s Settings) (*DB, error) {
	dialect, err := NewDialect(s.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(s))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping store: %w", err)
	}
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("configure store connection: %w", err)
	}
	return &DB{DB: db, Dialect: dialect}, nil
}

// Close releases the connection pool.
func (db *DB) Close() error { return db.DB.Close() }

// QueryContext runs a query with placeholder rewriting.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// QueryRowContext runs a single-row query with placeholder rewriting.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// ExecContext runs a statement with placeholder rewriting.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, db.Dialect.RewriteQuery(query), args...)
}

// InsertReturningID executes an INSERT and returns the new row id,
// papering over the LastInsertId/RETURNING split between backends.
func (db *DB) InsertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	rewritten := db.Dialect.RewriteQuery(query)

	if db.Dialect.SupportsLastInsertID() {
		res, err := db.DB.ExecContext(ctx, rewritten, args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	var id int64
	if err := db.DB.QueryRowContext(ctx, rewritten+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}
