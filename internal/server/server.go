// Package server exposes the mapping engine over HTTP. All state a
// request touches sits behind one RWMutex so the dictionary can be
// swapped by hot reload while requests are in flight.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/engine"
	"github.com/karaleary/civimap/internal/session"
)

// Options configure a Server. Engine is required; the rest are
// optional features.
type Options struct {
	Engine *engine.Engine
	// Store enables session creation and persisted feedback.
	Store *session.Store
	// Semantic, when set, is tried before the rule-based matcher.
	// Errors from it fall back to the rule path silently.
	Semantic engine.MatchFunc
	Logger   *log.Logger
}

type Server struct {
	mu       sync.RWMutex
	eng      *engine.Engine
	store    *session.Store
	semantic engine.MatchFunc
	logger   *log.Logger
}

func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		eng:      opts.Engine,
		store:    opts.Store,
		semantic: opts.Semantic,
		logger:   logger,
	}
}

// Reload swaps in a new dictionary. In-flight requests finish against
// the engine they already grabbed.
func (s *Server) Reload(dict *dictionary.Dictionary) {
	s.mu.Lock()
	s.eng = engine.New(dict)
	s.mu.Unlock()
	s.logger.Printf("dictionary reloaded: %d terms", dict.Len())
}

func (s *Server) engine() *engine.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng
}

// Routes builds the HTTP routing table.
func (s *Server) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/clarify", s.handleClarify)
		r.Post("/feedback", s.handleFeedback)
		r.Post("/sessions", s.handleNewSession)
		r.Post("/align", s.handleAlign)
		r.Get("/terms", s.handleTerms)
	})
	return r
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Routes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
