// internal/httpserver/routes_stats.go
//
// Statistics endpoints. /stats/* serves the calling account's own
// history; /admin/* serves cross-player views and is double-gated.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/palabrita/wordle-server/internal/stats"
)

func (s *Server) mountStatsRoutes() {
	gated := s.r.With(s.requireAuth())
	gated.Get("/stats/me", s.handleMyStats)
	gated.Get("/stats/me/summary", s.handleMySummary)
	gated.Get("/stats/me/export", s.handleMyExport)

	admin := s.r.With(s.requireAuth(), s.requireAdmin())
	admin.Get("/admin/stats", s.handleAllStats)
	admin.Get("/admin/summary", s.handleAdminSummary)
	admin.Get("/admin/languages", s.handleLanguages)
	admin.Get("/admin/hardest", s.handleHardest)
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	games, err := s.stats.UserStatistics(r.Context(), me.ID)
	if err != nil {
		log.Error().Err(err).Int64("account", me.ID).Msg("user statistics")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

func (s *Server) handleMySummary(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	sum, err := s.stats.Summarize(r.Context(), me.ID)
	if err != nil {
		log.Error().Err(err).Int64("account", me.ID).Msg("summarize")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}

// handleMyExport streams the caller's history as a CSV download.
func (s *Server) handleMyExport(w http.ResponseWriter, r *http.Request) {
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	games, err := s.stats.UserStatistics(r.Context(), me.ID)
	if err != nil {
		log.Error().Err(err).Int64("account", me.ID).Msg("export statistics")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="game_history.csv"`)
	if err := stats.WriteCSV(w, me.Username, games); err != nil {
		log.Warn().Err(err).Msg("write csv")
	}
}

func (s *Server) handleAllStats(w http.ResponseWriter, r *http.Request) {
	games, err := s.stats.AllStatistics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("all statistics")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(games)
}

func (s *Server) handleAdminSummary(w http.ResponseWriter, r *http.Request) {
	d, err := s.stats.AdminDashboard(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("admin dashboard")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(d)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	dist, err := s.stats.LanguageDistribution(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("language distribution")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(dist)
}

func (s *Server) handleHardest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hard, err := s.stats.HardestWords(r.Context(), r.URL.Query().Get("language"), limit)
	if err != nil {
		log.Error().Err(err).Msg("hardest words")
		http.Error(w, `{"error":"stats_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(hard)
}
