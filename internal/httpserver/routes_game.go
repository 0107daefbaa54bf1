// internal/httpserver/routes_game.go
//
// Play endpoints. Sessions live in the registry keyed by a random game
// id; every handler checks the session belongs to the calling account
// and answers 404 otherwise, so ids cannot be probed across users.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/palabrita/wordle-server/internal/game"
)

func (s *Server) mountGameRoutes() {
	gated := s.r.With(s.requireAuth())
	gated.Post("/game/new", s.handleNewGame)
	gated.Post("/game/guess", s.handleGuess)
	gated.Post("/game/hint", s.handleHint)
	gated.Get("/game/state", s.handleGameState)
}

type newGameReq struct {
	Language string `json:"language"`
}
type newGameRes struct {
	GameID   string `json:"gameId"`
	Language string `json:"language"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	MaxHints int    `json:"maxHints"`
}

// handleNewGame picks a random word for the requested language and
// registers a fresh session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)

	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	target, err := s.words.RandomWord(r.Context(), req.Language)
	if err != nil {
		log.Error().Err(err).Str("language", req.Language).Msg("pick word")
		http.Error(w, `{"error":"no_words"}`, http.StatusServiceUnavailable)
		return
	}
	sess, err := game.NewSession(uuid.NewString(), me.ID, req.Language, target, s.sink)
	if err != nil {
		log.Error().Err(err).Msg("new session")
		http.Error(w, `{"error":"bad_word"}`, http.StatusInternalServerError)
		return
	}
	if err := s.games.Save(r.Context(), sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newGameRes{
		GameID:   sess.ID(),
		Language: sess.Language(),
		Rows:     game.BoardRows,
		Cols:     game.BoardCols,
		MaxHints: game.MaxHints,
	})
}

type guessReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}
type guessRes struct {
	Verdicts []game.Verdict           `json:"verdicts"`
	State    game.State               `json:"state"`
	Row      int                      `json:"row"`
	Keyboard map[string]game.KeyState `json:"keyboard"`
	Answer   string                   `json:"answer,omitempty"`
}

// handleGuess plays a whole word against the session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.ownedSession(w, r, req.GameID)
	if !ok {
		return
	}
	verdicts, state, err := sess.Guess(req.Word)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrFinished) {
			status = http.StatusConflict
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	res := guessRes{
		Verdicts: verdicts,
		State:    state,
		Row:      sess.Row(),
		Keyboard: sess.Keyboard(),
	}
	// The answer is only disclosed once the game cannot continue.
	if state == game.StateLost {
		res.Answer = sess.Target()
	}
	_ = json.NewEncoder(w).Encode(res)
}

type hintReq struct {
	GameID string `json:"gameId"`
}
type hintRes struct {
	Column      int    `json:"column"`
	Letter      string `json:"letter,omitempty"`
	AllRevealed bool   `json:"allRevealed"`
	HintsUsed   int    `json:"hintsUsed"`
	MaxHints    int    `json:"maxHints"`
}

// handleHint reveals the target letter of one unconfirmed column.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.ownedSession(w, r, req.GameID)
	if !ok {
		return
	}
	h, err := sess.UseHint()
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrFinished) {
			status = http.StatusConflict
		}
		http.Error(w, `{"error":"`+err.Error()+`"}`, status)
		return
	}
	res := hintRes{
		Column:      h.Column,
		AllRevealed: h.AllRevealed,
		HintsUsed:   sess.HintsUsed(),
		MaxHints:    game.MaxHints,
	}
	if !h.AllRevealed {
		res.Letter = string(h.Letter)
	}
	_ = json.NewEncoder(w).Encode(res)
}

type gameStateRes struct {
	GameID    string                   `json:"gameId"`
	Language  string                   `json:"language"`
	State     game.State               `json:"state"`
	Board     [][]game.Tile            `json:"board"`
	Row       int                      `json:"row"`
	Col       int                      `json:"col"`
	Keyboard  map[string]game.KeyState `json:"keyboard"`
	HintsUsed int                      `json:"hintsUsed"`
	MaxHints  int                      `json:"maxHints"`
	Answer    string                   `json:"answer,omitempty"`
}

// handleGameState returns a full snapshot of one session.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.ownedSession(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	res := gameStateRes{
		GameID:    sess.ID(),
		Language:  sess.Language(),
		State:     sess.State(),
		Board:     sess.Board(),
		Row:       sess.Row(),
		Col:       sess.Col(),
		Keyboard:  sess.Keyboard(),
		HintsUsed: sess.HintsUsed(),
		MaxHints:  game.MaxHints,
	}
	if res.State == game.StateLost {
		res.Answer = sess.Target()
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ownedSession loads a session and verifies the caller owns it. A
// missing session and a foreign session are indistinguishable.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request, gameID string) (*game.Session, bool) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if gameID == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return nil, false
	}
	sess, err := s.games.Get(r.Context(), gameID)
	if err != nil || sess.AccountID() != me.ID {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}
