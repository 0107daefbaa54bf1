// internal/store/store.go
//
// Typed access to the remotely hosted tables. Every method returns a
// normalized shape (typed struct slices/maps + error) so downstream
// code never branches on raw result forms. The application only reads,
// inserts and updates; the schema itself is owned by the hosted store.

package store

import (
	"errors"
	"strings"
	"time"

	"github.com/palabrita/wordle-server/internal/database"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("store: not found")

// Account mirrors one accounts row.
type Account struct {
	ID            int64
	Username      string
	PasswordHash  string
	Email         string
	AccountTypeID int64
}

// AccountType mirrors one account_types row.
type AccountType struct {
	ID      int64
	IsAdmin bool
}

// Language mirrors one languages row.
type Language struct {
	ID   int64
	Code string
	Name string
}

// Word mirrors one words row.
type Word struct {
	ID         int64
	Text       string
	LanguageID int64
}

// GameRecord mirrors one game_records row. Rows are append-only facts:
// written once at game termination, never updated or deleted.
type GameRecord struct {
	ID             int64
	AccountID      int64
	WordID         int64
	Attempts       int
	ElapsedSeconds float64
	Won            bool
	HintsUsed      int
	CreatedAt      time.Time
}

// Store issues CRUD calls against the hosted tables.
type Store struct {
	db *database.DB
}

// New wraps an opened store handle.
func New(db *database.DB) *Store { return &Store{db: db} }

/* ------------------------------ helpers ------------------------------ */

// inPlaceholders builds "?,?,?" for IN clauses.
func inPlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// int64Args widens ids for variadic query arguments.
func int64Args(ids []int64) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

// timestampFormats covers the shapes the backends hand back for
// created_at columns.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// parseTimestamp parses a created_at value; zero time on failure.
func parseTimestamp(s string) time.Time {
	for _, f := range timestampFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
