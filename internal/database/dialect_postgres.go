package database

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// postgresDialect targets the hosted deployment (a managed Postgres
// service reached with a base address plus an access key).
type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "postgres" }

// DSN appends the access key as the password of a keyword/value DSN,
// e.g. URL "host=db.example.net user=app dbname=wordle sslmode=require".
func (postgresDialect) DSN(s Settings) string {
	if s.Key == "" {
		return s.URL
	}
	return s.URL + " password=" + s.Key
}

func (postgresDialect) RewriteQuery(query string) string {
	return rewriteNumbered(query)
}

func (postgresDialect) SupportsLastInsertID() bool { return false }

func (postgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
	return nil
}
