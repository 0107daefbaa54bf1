// internal/game/types.go
//
// Core type definitions for the guess engine and session state machine.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent).
//   - KeyState: accumulated evidence for a keyboard letter.
//   - Tile: one board cell (letter + verdict).
//   - Outcome: the record emitted once when a session terminates.

package game

// Verdict classifies a single letter of a submitted guess.
// Possible values:
//   - "correct": right letter, right position.
//   - "present": letter occurs in the target, different position,
//     within the target's remaining occurrence count.
//   - "absent":  letter not in the target, or its count is exhausted.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

// KeyState is the best evidence seen so far for one keyboard letter.
// A key's state only ever improves: unused < absent < present < correct.
type KeyState string

const (
	KeyUnused  KeyState = "unused"
	KeyAbsent  KeyState = "absent"
	KeyPresent KeyState = "present"
	KeyCorrect KeyState = "correct"
)

// keyRank orders KeyState values for the monotonic upgrade rule.
var keyRank = map[KeyState]int{
	KeyUnused:  0,
	KeyAbsent:  1,
	KeyPresent: 2,
	KeyCorrect: 3,
}

// keyStateFor maps a verdict onto the keyboard evidence scale.
func keyStateFor(v Verdict) KeyState {
	switch v {
	case VerdictCorrect:
		return KeyCorrect
	case VerdictPresent:
		return KeyPresent
	default:
		return KeyAbsent
	}
}

// Tile is one cell of the board grid.
type Tile struct {
	Letter  rune    `json:"letter,omitempty"`
	Verdict Verdict `json:"verdict,omitempty"`
	Filled  bool    `json:"filled"`
}

// State is the coarse session state exposed to callers.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Outcome is emitted exactly once when a session reaches a terminal
// state. It mirrors one game-record row.
type Outcome struct {
	AccountID      int64
	Word           string
	Language       string
	Attempts       int
	ElapsedSeconds float64
	Won            bool
	HintsUsed      int
}
