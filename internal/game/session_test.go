package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink records the outcome it receives and can be told to fail.
type fakeSink struct {
	mu      sync.Mutex
	outcome Outcome
	calls   int
	err     error
}

func (f *fakeSink) SaveResult(ctx context.Context, o Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcome = o
	f.calls++
	return f.err
}

func (f *fakeSink) saved() (Outcome, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcome, f.calls
}

func waitDone(t *testing.T, s *Session) error {
	t.Helper()
	select {
	case err := <-s.Done():
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("session never reported its outcome write")
		return nil
	}
}

func newTestSession(t *testing.T, target string, sink ResultSink) *Session {
	t.Helper()
	s, err := NewSession("g1", 7, "english", target, sink)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsBadTarget(t *testing.T) {
	_, err := NewSession("g1", 7, "english", "toolong", nil)
	assert.ErrorIs(t, err, ErrBadTarget)

	_, err = NewSession("g1", 7, "english", "wor1d", nil)
	assert.ErrorIs(t, err, ErrBadTarget)
}

func TestWinRecordsAttemptRow(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSession(t, "world", sink)

	_, state, err := s.Guess("crane")
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, state)

	_, state, err = s.Guess("world")
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
	assert.NoError(t, waitDone(t, s))

	o, calls := sink.saved()
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(7), o.AccountID)
	assert.Equal(t, "world", o.Word)
	assert.Equal(t, "english", o.Language)
	assert.Equal(t, 2, o.Attempts)
	assert.True(t, o.Won)
}

func TestLossAlwaysRecordsFullRowCount(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSession(t, "world", sink)

	var state State
	for i := 0; i < BoardRows; i++ {
		var err error
		_, state, err = s.Guess("crane")
		require.NoError(t, err)
	}
	assert.Equal(t, StateLost, state)
	assert.NoError(t, waitDone(t, s))

	o, _ := sink.saved()
	assert.Equal(t, BoardRows, o.Attempts)
	assert.False(t, o.Won)
}

func TestGuessAfterFinishFails(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})
	_, _, err := s.Guess("world")
	require.NoError(t, err)

	_, _, err = s.Guess("crane")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestGuessValidation(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})

	_, _, err := s.Guess("word")
	assert.ErrorIs(t, err, ErrBadGuess)

	_, _, err = s.Guess("wor1d")
	assert.ErrorIs(t, err, ErrBadGuess)
}

func TestGuessReplacesPartialRowInput(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})
	require.NoError(t, s.AppendLetter('a'))
	require.NoError(t, s.AppendLetter('b'))

	verdicts, state, err := s.Guess("world")
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)
	assert.Equal(t, []Verdict{VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictCorrect, VerdictCorrect}, verdicts)
}

func TestLetterEntryEdges(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})

	assert.ErrorIs(t, s.DeleteLetter(), ErrRowEmpty)
	assert.ErrorIs(t, s.AppendLetter('1'), ErrNotLetter)

	_, _, err := s.SubmitGuess()
	assert.ErrorIs(t, err, ErrRowIncomplete)

	for _, ch := range "crane" {
		require.NoError(t, s.AppendLetter(ch))
	}
	assert.ErrorIs(t, s.AppendLetter('x'), ErrRowFull)

	require.NoError(t, s.DeleteLetter())
	assert.Equal(t, 4, s.Col())
}

func TestKeyboardEvidenceNeverRegresses(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})

	// "rrrrr": position 2 is correct, the rest exhaust the single R.
	_, _, err := s.Guess("rrrrr")
	require.NoError(t, err)
	assert.Equal(t, KeyCorrect, s.Keyboard()["r"])

	// A later guess placing R wrongly must not downgrade the key.
	_, _, err = s.Guess("racer")
	require.NoError(t, err)
	assert.Equal(t, KeyCorrect, s.Keyboard()["r"])
}

func TestHintRevealsUnconfirmedColumn(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})

	// Confirms columns 0-3, leaving only the final D unrevealed.
	_, _, err := s.Guess("worls")
	require.NoError(t, err)

	h, err := s.UseHint()
	require.NoError(t, err)
	assert.False(t, h.AllRevealed)
	assert.Equal(t, 4, h.Column)
	assert.Equal(t, 'd', h.Letter)
	assert.Equal(t, 1, s.HintsUsed())
}

func TestHintAllRevealedStillConsumesBudget(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})

	_, _, err := s.Guess("worls")
	require.NoError(t, err)
	_, _, err = s.Guess("aorld")
	require.NoError(t, err)

	h, err := s.UseHint()
	require.NoError(t, err)
	assert.True(t, h.AllRevealed)
	assert.Equal(t, 1, s.HintsUsed())
}

func TestHintBudget(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})

	for i := 0; i < MaxHints; i++ {
		_, err := s.UseHint()
		require.NoError(t, err)
	}
	_, err := s.UseHint()
	assert.ErrorIs(t, err, ErrNoHintsLeft)
	assert.Equal(t, MaxHints, s.HintsUsed())
}

func TestHintAfterFinishFails(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})
	_, _, err := s.Guess("world")
	require.NoError(t, err)

	_, err = s.UseHint()
	assert.ErrorIs(t, err, ErrFinished)
}

func TestHintsUsedFlowsIntoOutcome(t *testing.T) {
	sink := &fakeSink{}
	s := newTestSession(t, "world", sink)

	_, err := s.UseHint()
	require.NoError(t, err)
	_, _, err = s.Guess("world")
	require.NoError(t, err)
	assert.NoError(t, waitDone(t, s))

	o, _ := sink.saved()
	assert.Equal(t, 1, o.HintsUsed)
}

func TestSinkFailureDoesNotAffectGameState(t *testing.T) {
	sink := &fakeSink{err: errors.New("store unreachable")}
	s := newTestSession(t, "world", sink)

	_, state, err := s.Guess("world")
	require.NoError(t, err)
	assert.Equal(t, StateWon, state)

	assert.Error(t, waitDone(t, s))
	assert.Equal(t, StateWon, s.State())
}

func TestBoardSnapshotIsACopy(t *testing.T) {
	s := newTestSession(t, "world", &fakeSink{})
	_, _, err := s.Guess("crane")
	require.NoError(t, err)

	b := s.Board()
	b[0][0] = Tile{Letter: 'z', Filled: true}
	assert.Equal(t, 'c', s.Board()[0][0].Letter)
}
