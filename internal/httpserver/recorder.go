package httpserver

import (
	"context"

	"github.com/palabrita/wordle-server/internal/game"
	"github.com/palabrita/wordle-server/internal/words"
)

// RecordStore is the slice of the persistence layer the recorder needs.
type RecordStore interface {
	InsertGameRecord(ctx context.Context, accountID, wordID int64, attempts int, elapsedSeconds float64, won bool, hintsUsed int) (int64, error)
}

// gameRecorder bridges finished sessions to the hosted game_records
// table: it resolves (or creates) the words row for the played word and
// appends the record.
type gameRecorder struct {
	words   *words.Provider
	records RecordStore
}

func (g *gameRecorder) SaveResult(ctx context.Context, o game.Outcome) error {
	wordID, _, err := g.words.EnsureWord(ctx, o.Word, o.Language)
	if err != nil {
		return err
	}
	_, err = g.records.InsertGameRecord(ctx, o.AccountID, wordID, o.Attempts, o.ElapsedSeconds, o.Won, o.HintsUsed)
	return err
}
