// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Pull per-language candidate lists from the hosted store and keep
//     only valid 5-letter entries.
//   - Fall back to small embedded defaults when the store is
//     unreachable or a language has no usable words yet.
//   - Supply RandomWord for new games and EnsureWord so finished games
//     can always reference a words row.
//
// Languages are addressed by display name or short code ("english"/"en",
// "spanish"/"es"); unknown names are passed to the store as-is so new
// languages seeded remotely work without a code change here.

package words

import (
	"context"
	"crypto/rand"
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// WordLength is the only word size the board plays.
const WordLength = 5

//go:embed defaults_english.txt
var embeddedEnglish string

//go:embed defaults_spanish.txt
var embeddedSpanish string

// ErrNoWords is returned when neither the store nor the embedded
// defaults can produce a candidate for a language.
var ErrNoWords = errors.New("words: no candidates for language")

// Store is the slice of the persistence layer the provider needs.
type Store interface {
	LanguageIDByName(ctx context.Context, name string) (int64, error)
	WordsByLanguage(ctx context.Context, languageID int64) ([]string, error)
	WordIDByText(ctx context.Context, text string, languageID int64) (int64, error)
	InsertWord(ctx context.Context, text string, languageID int64) (int64, error)
}

// Provider serves word candidates per language.
type Provider struct {
	store Store
}

// NewProvider wraps a store handle.
func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// Candidates returns the playable words for a language: the stored list
// filtered to valid length-5 entries, or the embedded defaults when the
// store yields nothing usable.
func (p *Provider) Candidates(ctx context.Context, language string) ([]string, error) {
	lang := NormalizeLanguage(language)

	list, err := p.storedCandidates(ctx, lang)
	if err != nil {
		log.Warn().Err(err).Str("language", lang).Msg("falling back to embedded word list")
	}
	if len(list) > 0 {
		return list, nil
	}

	fallback := normalizeLines(embeddedDefaults(lang))
	if len(fallback) == 0 {
		return nil, ErrNoWords
	}
	return fallback, nil
}

// RandomWord picks a cryptographically random candidate for a language.
func (p *Provider) RandomWord(ctx context.Context, language string) (string, error) {
	list, err := p.Candidates(ctx, language)
	if err != nil {
		return "", err
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return "", fmt.Errorf("words: random pick: %w", err)
	}
	return list[nBig.Int64()], nil
}

// EnsureWord resolves (or creates) the words row for a played word and
// returns its id along with the language id. A lost insert race is
// absorbed by re-querying once.
func (p *Provider) EnsureWord(ctx context.Context, text, language string) (wordID, languageID int64, err error) {
	lang := NormalizeLanguage(language)
	text = strings.ToLower(strings.TrimSpace(text))

	languageID, err = p.store.LanguageIDByName(ctx, lang)
	if err != nil {
		return 0, 0, fmt.Errorf("words: resolve language %q: %w", lang, err)
	}

	wordID, err = p.store.WordIDByText(ctx, text, languageID)
	if err == nil {
		return wordID, languageID, nil
	}

	wordID, insErr := p.store.InsertWord(ctx, text, languageID)
	if insErr == nil {
		return wordID, languageID, nil
	}

	// Someone else may have inserted it between our lookup and insert.
	wordID, err = p.store.WordIDByText(ctx, text, languageID)
	if err != nil {
		return 0, 0, fmt.Errorf("words: ensure %q: %w", text, insErr)
	}
	return wordID, languageID, nil
}

func (p *Provider) storedCandidates(ctx context.Context, lang string) ([]string, error) {
	id, err := p.store.LanguageIDByName(ctx, lang)
	if err != nil {
		return nil, err
	}
	raw, err := p.store.WordsByLanguage(ctx, id)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, w := range raw {
		w = strings.TrimSpace(strings.ToLower(w))
		if isPlayable(w) {
			out = append(out, w)
		}
	}
	return out, nil
}

// NormalizeLanguage folds codes and localized spellings onto the
// canonical display names the store uses.
func NormalizeLanguage(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", "en", "eng", "english":
		return "english"
	case "es", "esp", "español", "espanol", "spanish":
		return "spanish"
	default:
		return strings.ToLower(strings.TrimSpace(language))
	}
}

func embeddedDefaults(lang string) string {
	switch lang {
	case "spanish":
		return embeddedSpanish
	default:
		return embeddedEnglish
	}
}

// normalizeLines processes an embedded multiline string into a slice
// of valid lowercase 5-letter words.
func normalizeLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		w := strings.TrimSpace(strings.ToLower(line))
		if isPlayable(w) {
			out = append(out, w)
		}
	}
	return out
}

// isPlayable reports whether w is exactly five letters. Letters are
// checked per rune so ñ and accented vowels count.
func isPlayable(w string) bool {
	if utf8.RuneCountInString(w) != WordLength {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
