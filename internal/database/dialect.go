package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect covers the backend-specific corners of the store.
type Dialect interface {
	// DriverName is the name registered with database/sql.
	DriverName() string

	// DSN assembles the data source name from the settings.
	DSN(s Settings) string

	// RewriteQuery converts `?` placeholders if the backend needs it.
	RewriteQuery(query string) string

	// SupportsLastInsertID reports whether the driver implements
	// Result.LastInsertId (postgres requires RETURNING instead).
	SupportsLastInsertID() bool

	// ConfigureConnection applies pool sizing and per-backend settings.
	ConfigureConnection(db *sql.DB) error
}

// NewDialect resolves a driver name to its dialect.
func NewDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}

// rewriteNumbered converts `?` placeholders to $1, $2, ...
// Queries in this codebase never contain a literal question mark, so a
// plain scan is sufficient.
func rewriteNumbered(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
