// internal/httpserver/server.go
//
// HTTP server wiring for the word game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Auth endpoints: /auth/signup, /auth/login, /auth/logout, /auth/reset.
//   - Game endpoints (require auth): /game/new, /game/guess, /game/hint, /game/state.
//   - Stats endpoints (require auth): /stats/me, /stats/me/summary, /stats/me/export.
//   - Admin endpoints (require admin): /admin/stats, /admin/languages, /admin/hardest.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Admin access is re-checked against the store on every request, not
//     trusted from the token alone.

package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/palabrita/wordle-server/internal/account"
	"github.com/palabrita/wordle-server/internal/config"
	"github.com/palabrita/wordle-server/internal/game"
	"github.com/palabrita/wordle-server/internal/stats"
	"github.com/palabrita/wordle-server/internal/words"
)

// Server bundles the router with the services behind the endpoints.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	accounts *account.Service
	words    *words.Provider
	stats    *stats.Aggregator
	games    game.Registry
	sink     game.ResultSink
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, accounts *account.Service, provider *words.Provider, agg *stats.Aggregator, registry game.Registry, records RecordStore) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		accounts: accounts,
		words:    provider,
		stats:    agg,
		games:    registry,
		sink:     &gameRecorder{words: provider, records: records},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-server","endpoints":["/health","/auth/*","/game/*","/stats/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountAuthRoutes()
	s.mountGameRoutes()
	s.mountStatsRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
