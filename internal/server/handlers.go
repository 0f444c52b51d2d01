package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/engine"
	"github.com/karaleary/civimap/internal/session"
)

type analyzeRequest struct {
	Priorities []string `json:"priorities"`
	SessionID  string   `json:"sessionId,omitempty"`
}

type analyzeResponse struct {
	engine.PriorityAnalysis
	SessionID string `json:"sessionId,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	eng := s.engine()
	analysis, err := s.analyze(eng, req.Priorities)
	if err != nil {
		// Semantic path failed; the rule path cannot.
		s.logger.Printf("semantic match failed, using rule path: %v", err)
		analysis = eng.MapPriorities(req.Priorities)
	}

	if req.SessionID != "" && s.store != nil {
		learner, err := s.store.LoadLearner(req.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				writeError(w, http.StatusNotFound, "unknown session")
				return
			}
			writeError(w, http.StatusInternalServerError, "session lookup failed")
			return
		}
		learner.Apply(eng, &analysis)
	}

	writeJSON(w, http.StatusOK, analyzeResponse{PriorityAnalysis: analysis, SessionID: req.SessionID})
}

func (s *Server) analyze(eng *engine.Engine, priorities []string) (engine.PriorityAnalysis, error) {
	if s.semantic == nil {
		return eng.MapPriorities(priorities), nil
	}
	return eng.MapPrioritiesUsing(s.semantic, priorities)
}

type clarifyRequest struct {
	Priority string `json:"priority"`
}

func (s *Server) handleClarify(w http.ResponseWriter, r *http.Request) {
	var req clarifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Priority == "" {
		writeError(w, http.StatusBadRequest, "priority is required")
		return
	}

	eng := s.engine()
	writeJSON(w, http.StatusOK, map[string]any{
		"priority":   req.Priority,
		"candidates": eng.ClarificationCandidates(req.Priority),
	})
}

type feedbackRequest struct {
	SessionID string `json:"sessionId"`
	Priority  string `json:"priority"`
	TermID    string `json:"termId"`
	Positive  bool   `json:"positive"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "sessions are not enabled")
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" || req.Priority == "" || req.TermID == "" {
		writeError(w, http.StatusBadRequest, "sessionId, priority and termId are required")
		return
	}
	if _, ok := s.engine().Dictionary().Term(req.TermID); !ok {
		writeError(w, http.StatusBadRequest, "unknown term id")
		return
	}

	err := s.store.RecordFeedback(req.SessionID, req.Priority, req.TermID, req.Positive)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown session")
			return
		}
		writeError(w, http.StatusInternalServerError, "recording feedback failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotImplemented, "sessions are not enabled")
		return
	}
	sess, err := s.store.NewSession()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "creating session failed")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

type alignRequest struct {
	VoterTermIDs []string `json:"voterTermIds"`
	OtherTermIDs []string `json:"otherTermIds"`
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req alignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]engine.Alignment{
		"alignment": engine.CompareTermSets(req.VoterTermIDs, req.OtherTermIDs),
	})
}

type termSummary struct {
	ID           string              `json:"id"`
	StandardTerm string              `json:"standardTerm"`
	PlainEnglish string              `json:"plainEnglish"`
	Category     dictionary.Category `json:"category"`
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	dict := s.engine().Dictionary()
	terms := dict.Terms()

	out := make([]termSummary, len(terms))
	for i, term := range terms {
		out[i] = termSummary{
			ID:           term.ID,
			StandardTerm: term.StandardTerm,
			PlainEnglish: term.PlainEnglish,
			Category:     term.Category,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"terms": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"terms":  s.engine().Dictionary().Len(),
	})
}
