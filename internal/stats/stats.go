// internal/stats/stats.go
//
// Statistics over finished games. The hosted tables are plain CRUD
// endpoints with no server-side joins, so the aggregator fetches the
// flat record list and joins words, languages and usernames in memory.

package stats

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/palabrita/wordle-server/internal/store"
)

// Store is the slice of the persistence layer the aggregator needs.
type Store interface {
	RecordsByAccount(ctx context.Context, accountID int64) ([]store.GameRecord, error)
	Records(ctx context.Context) ([]store.GameRecord, error)
	WordsByIDs(ctx context.Context, ids []int64) (map[int64]store.Word, error)
	LanguagesByIDs(ctx context.Context, ids []int64) (map[int64]store.Language, error)
	AccountsByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// GameSummary is one finished game joined with its word, language and
// (for admin views) the player's username.
type GameSummary struct {
	Username       string    `json:"username,omitempty"`
	Word           string    `json:"word"`
	Language       string    `json:"language"`
	Attempts       int       `json:"attempts"`
	ElapsedSeconds float64   `json:"elapsedSeconds"`
	Won            bool      `json:"won"`
	HintsUsed      int       `json:"hintsUsed"`
	CreatedAt      time.Time `json:"createdAt"`
}

// LanguageCount is how many games were played in one language.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// HardestWord ranks a word by the average attempts it took players.
type HardestWord struct {
	Word        string  `json:"word"`
	Language    string  `json:"language"`
	AvgAttempts float64 `json:"avgAttempts"`
	TimesPlayed int     `json:"timesPlayed"`
}

// Dashboard is the cross-player view backing the admin panel.
type Dashboard struct {
	TotalGames  int             `json:"totalGames"`
	TotalWins   int             `json:"totalWins"`
	WinRate     float64         `json:"winRate"`
	AvgAttempts float64         `json:"avgAttempts"`
	Languages   []LanguageCount `json:"languages"`
	Hardest     []HardestWord   `json:"hardest"`
}

// Summary condenses one player's history.
type Summary struct {
	TotalGames    int                `json:"totalGames"`
	WinRate       float64            `json:"winRate"`
	AvgSeconds    float64            `json:"avgSeconds"`
	AvgAttempts   float64            `json:"avgAttempts"`
	LanguageShare map[string]float64 `json:"languageShare"`
	CurrentStreak int                `json:"currentStreak"`
	MaxStreak     int                `json:"maxStreak"`
}

// Aggregator computes statistics views.
type Aggregator struct {
	store Store
}

// NewAggregator wraps a store handle.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// UserStatistics returns one account's games, newest first.
func (a *Aggregator) UserStatistics(ctx context.Context, accountID int64) ([]GameSummary, error) {
	records, err := a.store.RecordsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("stats: fetch records: %w", err)
	}
	return a.join(ctx, records, false)
}

// AllStatistics returns every game in the store with usernames
// attached, newest first.
func (a *Aggregator) AllStatistics(ctx context.Context) ([]GameSummary, error) {
	records, err := a.store.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: fetch records: %w", err)
	}
	return a.join(ctx, records, true)
}

// join resolves the word, language and (optionally) username for each
// record. Lookup failures degrade to an empty list rather than an
// error: the records themselves were fetched fine and a stats screen
// with nothing to show beats a hard failure.
func (a *Aggregator) join(ctx context.Context, records []store.GameRecord, withUsernames bool) ([]GameSummary, error) {
	if len(records) == 0 {
		return []GameSummary{}, nil
	}

	wordIDs := make([]int64, 0, len(records))
	seenWords := make(map[int64]bool, len(records))
	for _, r := range records {
		if !seenWords[r.WordID] {
			seenWords[r.WordID] = true
			wordIDs = append(wordIDs, r.WordID)
		}
	}
	words, err := a.store.WordsByIDs(ctx, wordIDs)
	if err != nil {
		log.Warn().Err(err).Msg("stats: word lookup failed")
		return []GameSummary{}, nil
	}

	langIDs := make([]int64, 0, len(words))
	seenLangs := make(map[int64]bool, len(words))
	for _, w := range words {
		if !seenLangs[w.LanguageID] {
			seenLangs[w.LanguageID] = true
			langIDs = append(langIDs, w.LanguageID)
		}
	}
	langs, err := a.store.LanguagesByIDs(ctx, langIDs)
	if err != nil {
		log.Warn().Err(err).Msg("stats: language lookup failed")
		return []GameSummary{}, nil
	}

	var usernames map[int64]string
	if withUsernames {
		accIDs := make([]int64, 0, len(records))
		seenAccs := make(map[int64]bool, len(records))
		for _, r := range records {
			if !seenAccs[r.AccountID] {
				seenAccs[r.AccountID] = true
				accIDs = append(accIDs, r.AccountID)
			}
		}
		usernames, err = a.store.AccountsByIDs(ctx, accIDs)
		if err != nil {
			log.Warn().Err(err).Msg("stats: account lookup failed")
			return []GameSummary{}, nil
		}
	}

	out := make([]GameSummary, 0, len(records))
	for _, r := range records {
		w := words[r.WordID]
		g := GameSummary{
			Word:           w.Text,
			Language:       langs[w.LanguageID].Name,
			Attempts:       r.Attempts,
			ElapsedSeconds: r.ElapsedSeconds,
			Won:            r.Won,
			HintsUsed:      r.HintsUsed,
			CreatedAt:      r.CreatedAt,
		}
		if withUsernames {
			g.Username = usernames[r.AccountID]
			if g.Username == "" {
				g.Username = "Unknown"
			}
		}
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// LanguageDistribution counts games per language across all players,
// most played first.
func (a *Aggregator) LanguageDistribution(ctx context.Context) ([]LanguageCount, error) {
	games, err := a.AllStatistics(ctx)
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, g := range games {
		counts[g.Language]++
	}
	out := make([]LanguageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out, nil
}

// HardestWords ranks words by average attempts, hardest first. An empty
// language means all languages; limit caps the result (0 means 10).
func (a *Aggregator) HardestWords(ctx context.Context, language string, limit int) ([]HardestWord, error) {
	games, err := a.AllStatistics(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	type agg struct {
		language string
		total    int
		count    int
	}
	byWord := map[string]*agg{}
	for _, g := range games {
		if language != "" && g.Language != language {
			continue
		}
		key := g.Language + "\x00" + g.Word
		e := byWord[key]
		if e == nil {
			e = &agg{language: g.Language}
			byWord[key] = e
		}
		e.total += g.Attempts
		e.count++
	}

	out := make([]HardestWord, 0, len(byWord))
	for key, e := range byWord {
		word := key[len(e.language)+1:]
		out = append(out, HardestWord{
			Word:        word,
			Language:    e.language,
			AvgAttempts: float64(e.total) / float64(e.count),
			TimesPlayed: e.count,
		})
	}
	// Pre-sort by word so equal averages rank deterministically.
	sort.Slice(out, func(i, j int) bool { return out[i].Word < out[j].Word })
	sort.SliceStable(out, func(i, j int) bool { return out[i].AvgAttempts > out[j].AvgAttempts })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AdminDashboard condenses the whole game log into the numbers the
// admin panel shows, with the per-language split and the ten hardest
// words attached.
func (a *Aggregator) AdminDashboard(ctx context.Context) (Dashboard, error) {
	games, err := a.AllStatistics(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{TotalGames: len(games)}
	langCounts := map[string]int{}
	totalAttempts := 0
	for _, g := range games {
		if g.Won {
			d.TotalWins++
		}
		totalAttempts += g.Attempts
		langCounts[g.Language]++
	}
	if len(games) > 0 {
		d.WinRate = float64(d.TotalWins) / float64(len(games))
		d.AvgAttempts = float64(totalAttempts) / float64(len(games))
	}
	d.Languages = make([]LanguageCount, 0, len(langCounts))
	for lang, n := range langCounts {
		d.Languages = append(d.Languages, LanguageCount{Language: lang, Count: n})
	}
	sort.Slice(d.Languages, func(i, j int) bool {
		if d.Languages[i].Count != d.Languages[j].Count {
			return d.Languages[i].Count > d.Languages[j].Count
		}
		return d.Languages[i].Language < d.Languages[j].Language
	})

	d.Hardest, err = a.HardestWords(ctx, "", 10)
	if err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// Summarize condenses one account's history into headline numbers.
func (a *Aggregator) Summarize(ctx context.Context, accountID int64) (Summary, error) {
	games, err := a.UserStatistics(ctx, accountID)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{TotalGames: len(games), LanguageShare: map[string]float64{}}
	if len(games) == 0 {
		return s, nil
	}

	wins := 0
	var totalSeconds float64
	totalAttempts := 0
	langCounts := map[string]int{}
	for _, g := range games {
		if g.Won {
			wins++
		}
		totalSeconds += g.ElapsedSeconds
		totalAttempts += g.Attempts
		langCounts[g.Language]++
	}
	s.WinRate = float64(wins) / float64(len(games))
	s.AvgSeconds = totalSeconds / float64(len(games))
	s.AvgAttempts = float64(totalAttempts) / float64(len(games))
	for lang, n := range langCounts {
		s.LanguageShare[lang] = float64(n) / float64(len(games))
	}

	// Streaks run over chronological order; games is newest-first.
	streak, maxStreak := 0, 0
	for i := len(games) - 1; i >= 0; i-- {
		if games[i].Won {
			streak++
			if streak > maxStreak {
				maxStreak = streak
			}
		} else {
			streak = 0
		}
	}
	s.CurrentStreak = streak
	s.MaxStreak = maxStreak
	return s, nil
}

// WriteCSV renders a game list as CSV. The username column is filled
// from the summaries when present, otherwise from the fallback name.
func WriteCSV(w io.Writer, username string, games []GameSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"user", "word", "language", "attempts", "time", "result", "hints"}); err != nil {
		return err
	}
	for _, g := range games {
		user := g.Username
		if user == "" {
			user = username
		}
		result := "loss"
		if g.Won {
			result = "win"
		}
		row := []string{
			user,
			g.Word,
			g.Language,
			strconv.Itoa(g.Attempts),
			strconv.FormatFloat(g.ElapsedSeconds, 'f', 1, 64),
			result,
			strconv.Itoa(g.HintsUsed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
