package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palabrita/wordle-server/internal/database"
)

const testSchema = `
CREATE TABLE account_types (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	is_admin BOOLEAN NOT NULL DEFAULT 0
);
CREATE TABLE accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	email TEXT,
	account_type_id INTEGER NOT NULL REFERENCES account_types(id)
);
CREATE TABLE languages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE words (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL,
	language_id INTEGER NOT NULL REFERENCES languages(id),
	UNIQUE(word, language_id)
);
CREATE TABLE game_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id INTEGER NOT NULL REFERENCES accounts(id),
	word_id INTEGER NOT NULL REFERENCES words(id),
	attempts INTEGER NOT NULL,
	elapsed_seconds REAL NOT NULL,
	won BOOLEAN NOT NULL,
	hints_used INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
INSERT INTO account_types (is_admin) VALUES (0), (1);
INSERT INTO languages (code, name) VALUES ('en', 'english'), ('es', 'spanish');
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(database.Settings{
		Driver: "sqlite3",
		URL:    filepath.Join(t.TempDir(), "store_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ExecContext(context.Background(), testSchema)
	require.NoError(t, err)
	return New(db)
}

func TestAccountRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, "alice", "hash1", "alice@example.com", 1)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byName, err := s.AccountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	byID, err := s.AccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = s.AccountByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountEmptyEmailStoredAsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, "bob", "hash1", "", 1)
	require.NoError(t, err)

	got, err := s.AccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Email)
}

func TestUpdatePasswordHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateAccount(ctx, "alice", "old", "", 1)
	require.NoError(t, err)

	require.NoError(t, s.UpdatePasswordHash(ctx, "alice", "new"))
	got, err := s.AccountByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	assert.ErrorIs(t, s.UpdatePasswordHash(ctx, "ghost", "new"), ErrNotFound)
}

func TestAccountTypes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	regular, err := s.AccountTypeByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, regular.IsAdmin)

	admin, err := s.AccountTypeByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
}

func TestLanguageLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	byName, err := s.LanguageIDByName(ctx, "English")
	require.NoError(t, err)
	byCode, err := s.LanguageIDByName(ctx, "EN")
	require.NoError(t, err)
	assert.Equal(t, byName, byCode)

	_, err = s.LanguageIDByName(ctx, "klingon")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWordInsertAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	langID, err := s.LanguageIDByName(ctx, "english")
	require.NoError(t, err)

	id, err := s.InsertWord(ctx, "CRANE", langID)
	require.NoError(t, err)

	got, err := s.WordIDByText(ctx, "crane", langID)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	list, err := s.WordsByLanguage(ctx, langID)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, list)

	byIDs, err := s.WordsByIDs(ctx, []int64{id})
	require.NoError(t, err)
	assert.Equal(t, "crane", byIDs[id].Text)

	_, err = s.WordIDByText(ctx, "crane", langID+1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameRecordRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	acc, err := s.CreateAccount(ctx, "alice", "hash", "", 1)
	require.NoError(t, err)
	langID, err := s.LanguageIDByName(ctx, "english")
	require.NoError(t, err)
	wordID, err := s.InsertWord(ctx, "world", langID)
	require.NoError(t, err)

	before := time.Now().UTC().Add(-time.Second)
	_, err = s.InsertGameRecord(ctx, acc.ID, wordID, 3, 41.5, true, 1)
	require.NoError(t, err)

	records, err := s.RecordsByAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, 3, r.Attempts)
	assert.Equal(t, 41.5, r.ElapsedSeconds)
	assert.True(t, r.Won)
	assert.Equal(t, 1, r.HintsUsed)
	assert.True(t, r.CreatedAt.After(before))

	all, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	none, err := s.RecordsByAccount(ctx, acc.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestParseTimestampFormats(t *testing.T) {
	assert.False(t, parseTimestamp("2026-08-29T10:00:00Z").IsZero())
	assert.False(t, parseTimestamp("2026-08-29T10:00:00.123456Z").IsZero())
	assert.False(t, parseTimestamp("2026-08-29 10:00:00").IsZero())
	assert.True(t, parseTimestamp("yesterday").IsZero())
}
