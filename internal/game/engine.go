// internal/game/engine.go
//
// Guess evaluation for a single board row.
// Scores a guess against the target word using the classic two-pass
// algorithm:
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (non-matching) target letters into a multiset.
//
// Pass 2:
//   - For each non-correct guess letter: if the multiset still holds that
//     letter, mark present and decrement; otherwise mark absent.
//
// The ordering guarantees that correct+present markings for any letter
// never exceed its occurrence count in the target, and that correct
// always wins over present for the same letter.
//
// The multiset is a rune map rather than a fixed a-z table so that
// Spanish words (ñ and friends) score the same way as English ones.

package game

import (
	"errors"
	"strings"
	"unicode"
)

// ErrLengthMismatch is returned when target and guess differ in length.
// Callers are expected to guarantee equal lengths; this is a contract
// violation, not a user-facing condition.
var ErrLengthMismatch = errors.New("game: target and guess length mismatch")

// Evaluate scores guess against target, producing one verdict per
// letter. Both inputs are lowercased before comparison.
func Evaluate(target, guess string) ([]Verdict, error) {
	t := []rune(strings.ToLower(target))
	g := []rune(strings.ToLower(guess))
	if len(t) != len(g) {
		return nil, ErrLengthMismatch
	}

	res := make([]Verdict, len(g))
	remaining := make(map[rune]int, len(t))

	// First pass: exact matches, then count what is left of the target.
	for i := range g {
		if g[i] == t[i] {
			res[i] = VerdictCorrect
		} else {
			remaining[t[i]]++
		}
	}

	// Second pass: resolve present/absent for the rest.
	for i := range g {
		if res[i] == VerdictCorrect {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = VerdictPresent
			remaining[g[i]]--
		} else {
			res[i] = VerdictAbsent
		}
	}
	return res, nil
}

// isWord reports whether s consists only of letters.
func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}
