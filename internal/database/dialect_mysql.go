package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string { return "mysql" }

// DSN expects a full mysql DSN in the URL (user:pass@tcp(host)/db);
// the separate access key is not spliced into it.
func (mysqlDialect) DSN(s Settings) string { return s.URL }

func (mysqlDialect) RewriteQuery(query string) string { return query }

func (mysqlDialect) SupportsLastInsertID() bool { return true }

func (mysqlDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(time.Minute)
	return nil
}
