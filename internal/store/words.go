// internal/store/words.go
//
// Reads and inserts for the languages and words tables. Words are
// unique per (text, language) and are never deleted; new words appear
// either by external seeding or the first time one is played.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// LanguageIDByName resolves a language by display name or code,
// case-insensitively.
func (s *Store) LanguageIDByName(ctx context.Context, name string) (int64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM languages WHERE lower(name)=? OR lower(code)=?`, name, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query language: %w", err)
	}
	return id, nil
}

// LanguagesByIDs loads the languages for the given id set.
func (s *Store) LanguagesByIDs(ctx context.Context, ids []int64) (map[int64]Language, error) {
	out := make(map[int64]Language, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, name FROM languages WHERE id IN (`+inPlaceholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query languages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.ID, &l.Code, &l.Name); err != nil {
			return nil, err
		}
		out[l.ID] = l
	}
	return out, rows.Err()
}

// WordsByLanguage returns every word text stored for a language.
// Length filtering happens in the caller, which knows the board width.
func (s *Store) WordsByLanguage(ctx context.Context, languageID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM words WHERE language_id=?`, languageID)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// WordIDByText looks up one word within a language.
func (s *Store) WordIDByText(ctx context.Context, text string, languageID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM words WHERE word=? AND language_id=?`,
		strings.ToLower(text), languageID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query word: %w", err)
	}
	return id, nil
}

// InsertWord adds a word to a language. The (text, language) pair is
// unique remotely, so a concurrent duplicate insert surfaces as an
// error here; callers re-query once on failure.
func (s *Store) InsertWord(ctx context.Context, text string, languageID int64) (int64, error) {
	id, err := s.db.InsertReturningID(ctx,
		`INSERT INTO words (word, language_id) VALUES (?,?)`,
		strings.ToLower(text), languageID)
	if err != nil {
		return 0, fmt.Errorf("insert word: %w", err)
	}
	return id, nil
}

// WordsByIDs loads the words for the given id set.
func (s *Store) WordsByIDs(ctx context.Context, ids []int64) (map[int64]Word, error) {
	out := make(map[int64]Word, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, word, language_id FROM words WHERE id IN (`+inPlaceholders(len(ids))+`)`,
		int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var w Word
		if err := rows.Scan(&w.ID, &w.Text, &w.LanguageID); err != nil {
			return nil, err
		}
		out[w.ID] = w
	}
	return out, rows.Err()
}
