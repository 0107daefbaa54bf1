// internal/game/session.go
//
// State machine for one play session.
// Responsibilities:
//   - Track the 6x5 board, cursor position, and keyboard evidence.
//   - Apply letter entry, deletion, guess submission, and hints.
//   - Transition playing → won/lost and emit exactly one outcome record
//     to the result sink when a terminal state is reached.
//
// The outcome write is fire-and-forget: it runs on its own goroutine,
// a failure is logged and reported through Done(), and the terminal
// game state is never affected or retried.

package game

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog/log"
)

const (
	// BoardRows is the number of attempts allowed per game.
	BoardRows = 6
	// BoardCols is the word length the board is sized for.
	BoardCols = 5
	// MaxHints is the hint budget per game.
	MaxHints = 3
)

var (
	ErrFinished      = errors.New("game: session already finished")
	ErrRowFull       = errors.New("game: current row is full")
	ErrRowEmpty      = errors.New("game: current row is empty")
	ErrRowIncomplete = errors.New("game: current row is incomplete")
	ErrNotLetter     = errors.New("game: only letters can be entered")
	ErrBadTarget     = errors.New("game: target word does not fit the board")
	ErrBadGuess      = errors.New("game: guess does not fit the board")
	ErrNoHintsLeft   = errors.New("game: hint budget exhausted")
)

// ResultSink receives the single outcome record of a finished session.
// Implementations may be backed by SQL, memory (tests), etc.
type ResultSink interface {
	SaveResult(ctx context.Context, o Outcome) error
}

// Hint is the result of UseHint. When AllRevealed is set every column
// has already been confirmed correct and nothing new was disclosed.
type Hint struct {
	Column      int  `json:"column"`
	Letter      rune `json:"-"`
	AllRevealed bool `json:"allRevealed"`
}

// Session holds the state of a single game.
// All methods are safe for concurrent use.
type Session struct {
	id        string
	accountID int64
	language  string
	target    []rune

	mu        sync.Mutex
	board     [BoardRows][BoardCols]Tile
	row, col  int
	keyboard  map[rune]KeyState
	hintsUsed int
	attempts  int
	started   time.Time
	state     State
	sink      ResultSink
	done      chan error
}

// NewSession starts a session for the given target word.
// The target must be exactly BoardCols letters.
func NewSession(id string, accountID int64, language, target string, sink ResultSink) (*Session, error) {
	target = strings.ToLower(strings.TrimSpace(target))
	if len([]rune(target)) != BoardCols || !isWord(target) {
		return nil, ErrBadTarget
	}
	return &Session{
		id:        id,
		accountID: accountID,
		language:  language,
		target:    []rune(target),
		keyboard:  make(map[rune]KeyState),
		started:   time.Now(),
		state:     StatePlaying,
		sink:      sink,
		done:      make(chan error, 1),
	}, nil
}

// AppendLetter writes ch into the current cell and advances the cursor.
func (s *Session) AppendLetter(ch rune) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLetter(ch)
}

func (s *Session) appendLetter(ch rune) error {
	if s.state != StatePlaying {
		return ErrFinished
	}
	if s.col >= BoardCols {
		return ErrRowFull
	}
	ch = unicode.ToLower(ch)
	if !unicode.IsLetter(ch) {
		return ErrNotLetter
	}
	s.board[s.row][s.col] = Tile{Letter: ch, Filled: true}
	s.col++
	return nil
}

// DeleteLetter retreats the cursor and clears that cell.
func (s *Session) DeleteLetter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return ErrFinished
	}
	if s.col == 0 {
		return ErrRowEmpty
	}
	s.col--
	s.board[s.row][s.col] = Tile{}
	return nil
}

// SubmitGuess scores the current row. Valid only when the row is full.
// Returns the per-letter verdicts and the state after the transition.
func (s *Session) SubmitGuess() ([]Verdict, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitGuess()
}

func (s *Session) submitGuess() ([]Verdict, State, error) {
	if s.state != StatePlaying {
		return nil, s.state, ErrFinished
	}
	if s.col != BoardCols {
		return nil, s.state, ErrRowIncomplete
	}

	letters := make([]rune, BoardCols)
	for i := 0; i < BoardCols; i++ {
		letters[i] = s.board[s.row][i].Letter
	}
	guess := string(letters)

	verdicts, err := Evaluate(string(s.target), guess)
	if err != nil {
		return nil, s.state, err
	}
	for i, v := range verdicts {
		s.board[s.row][i].Verdict = v
		s.upgradeKey(letters[i], v)
	}

	switch {
	case guess == string(s.target):
		s.state = StateWon
		s.attempts = s.row + 1
		s.finish()
	case s.row == BoardRows-1:
		// Losing always records the full row count, whichever row
		// triggered it.
		s.state = StateLost
		s.attempts = BoardRows
		s.finish()
	default:
		s.row++
		s.col = 0
	}
	return verdicts, s.state, nil
}

// Guess plays a whole word: it replaces any partial input in the
// current row, enters the word, and submits it.
func (s *Session) Guess(word string) ([]Verdict, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return nil, s.state, ErrFinished
	}
	word = strings.ToLower(strings.TrimSpace(word))
	runes := []rune(word)
	if len(runes) != BoardCols || !isWord(word) {
		return nil, s.state, ErrBadGuess
	}
	for s.col > 0 {
		s.col--
		s.board[s.row][s.col] = Tile{}
	}
	for _, ch := range runes {
		if err := s.appendLetter(ch); err != nil {
			return nil, s.state, err
		}
	}
	return s.submitGuess()
}

// upgradeKey improves the keyboard evidence for a letter; a key never
// regresses to a weaker state.
func (s *Session) upgradeKey(ch rune, v Verdict) {
	next := keyStateFor(v)
	cur, ok := s.keyboard[ch]
	if !ok {
		cur = KeyUnused
	}
	if keyRank[next] > keyRank[cur] {
		s.keyboard[ch] = next
	}
}

// UseHint discloses the target letter of one column not yet confirmed
// correct in any prior row. The reveal is read-only: the board is not
// modified. The hint budget is consumed even when every column is
// already revealed (AllRevealed); clients treat that as informational.
func (s *Session) UseHint() (Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return Hint{}, ErrFinished
	}
	if s.hintsUsed >= MaxHints {
		return Hint{}, ErrNoHintsLeft
	}
	s.hintsUsed++

	var candidates []int
	for c := 0; c < BoardCols; c++ {
		revealed := false
		for r := 0; r < s.row; r++ {
			if s.board[r][c].Verdict == VerdictCorrect {
				revealed = true
				break
			}
		}
		if !revealed {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return Hint{AllRevealed: true}, nil
	}
	c := candidates[randomIndex(len(candidates))]
	return Hint{Column: c, Letter: s.target[c]}, nil
}

// finish emits the outcome record on a background goroutine.
// Called with the lock held, exactly once per session.
func (s *Session) finish() {
	o := Outcome{
		AccountID:      s.accountID,
		Word:           string(s.target),
		Language:       s.language,
		Attempts:       s.attempts,
		ElapsedSeconds: time.Since(s.started).Seconds(),
		Won:            s.state == StateWon,
		HintsUsed:      s.hintsUsed,
	}
	if s.sink == nil {
		s.done <- nil
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.sink.SaveResult(ctx, o)
		if err != nil {
			log.Warn().Err(err).
				Int64("account", o.AccountID).
				Str("word", o.Word).
				Msg("save game result")
		}
		s.done <- err
	}()
}

// Done reports the result of the terminal record write. It yields
// exactly one value (nil on success) after the session finishes.
func (s *Session) Done() <-chan error { return s.done }

// randomIndex returns a uniform random int in [0,n).
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// ----------------------------- accessors -----------------------------

func (s *Session) ID() string       { return s.id }
func (s *Session) AccountID() int64 { return s.accountID }
func (s *Session) Language() string { return s.language }

// Target returns the secret word. Callers must only surface it once the
// session has finished.
func (s *Session) Target() string { return string(s.target) }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Row() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.row
}

func (s *Session) Col() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col
}

func (s *Session) HintsUsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintsUsed
}

// Attempts reports the recorded attempt count for a finished session,
// or 0 while the session is still playing.
func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Board returns a snapshot copy of the grid.
func (s *Session) Board() [][]Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]Tile, BoardRows)
	for r := 0; r < BoardRows; r++ {
		row := make([]Tile, BoardCols)
		copy(row, s.board[r][:])
		out[r] = row
	}
	return out
}

// Keyboard returns a snapshot of the keyboard evidence map, keyed by
// letter.
func (s *Session) Keyboard() map[string]KeyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]KeyState, len(s.keyboard))
	for ch, st := range s.keyboard {
		out[string(ch)] = st
	}
	return out
}
