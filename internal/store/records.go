// internal/store/records.go
//
// Append-only game_records access. Timestamps are written as RFC 3339
// strings so every backend stores the same shape, and scanned back as
// strings because drivers disagree on native time support.

package store

import (
	"context"
	"fmt"
	"time"
)

// InsertGameRecord appends one finished game.
func (s *Store) InsertGameRecord(ctx context.Context, accountID, wordID int64, attempts int, elapsedSeconds float64, won bool, hintsUsed int) (int64, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	id, err := s.db.InsertReturningID(ctx, `
        INSERT INTO game_records (account_id, word_id, attempts, elapsed_seconds, won, hints_used, created_at)
        VALUES (?,?,?,?,?,?,?)`,
		accountID, wordID, attempts, elapsedSeconds, won, hintsUsed, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert game record: %w", err)
	}
	return id, nil
}

// RecordsByAccount returns every game record owned by one account.
func (s *Store) RecordsByAccount(ctx context.Context, accountID int64) ([]GameRecord, error) {
	return s.queryRecords(ctx, `
        SELECT id, account_id, word_id, attempts, elapsed_seconds, won, hints_used, created_at
        FROM game_records WHERE account_id=?`, accountID)
}

// Records returns every game record in the store.
func (s *Store) Records(ctx context.Context) ([]GameRecord, error) {
	return s.queryRecords(ctx, `
        SELECT id, account_id, word_id, attempts, elapsed_seconds, won, hints_used, created_at
        FROM game_records`)
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query game records: %w", err)
	}
	defer rows.Close()
	var out []GameRecord
	for rows.Next() {
		var r GameRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &r.AccountID, &r.WordID, &r.Attempts, &r.ElapsedSeconds, &r.Won, &r.HintsUsed, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTimestamp(createdAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
