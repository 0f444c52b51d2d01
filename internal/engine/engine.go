// Package engine is the public entry point of the priority mapping
// core: it runs normalize → match → resolve over each submitted
// priority, then checks the mapped set for conflicts. The engine holds
// only an immutable dictionary, so one instance may serve any number of
// concurrent callers without locking.
package engine

import (
	"strings"

	"github.com/karaleary/civimap/internal/conflict"
	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/matcher"
	"github.com/karaleary/civimap/internal/normalize"
	"github.com/karaleary/civimap/internal/resolver"
)

// MappedPriority is the per-input mapping result.
type MappedPriority struct {
	Original           string              `json:"original"`
	TermID             string              `json:"termId"`
	StandardTerm       string              `json:"standardTerm"`
	Category           dictionary.Category `json:"category"`
	Confidence         float64             `json:"confidence"`
	Nuance             map[string]float64  `json:"nuance,omitempty"`
	NeedsClarification bool                `json:"needsClarification"`
	Candidates         []matcher.Candidate `json:"candidates,omitempty"`
	TopicSuggestions   []string            `json:"topicSuggestions,omitempty"`
	Reasoning          string              `json:"reasoning"`
}

// PriorityAnalysis is the full result for one submission.
type PriorityAnalysis struct {
	Priorities        []MappedPriority  `json:"priorities"`
	Conflicts         []conflict.Result `json:"conflicts"`
	OverallConfidence float64           `json:"overallConfidence"`
}

// MatchFunc produces ranked candidates for one normalized input.
// Alternative matchers (e.g. an embedding-backed index) plug in here;
// the rule-based matcher never returns an error.
type MatchFunc func(normalized string) ([]matcher.Candidate, error)

// Engine maps raw priorities against a fixed dictionary.
type Engine struct {
	dict *dictionary.Dictionary
}

// New builds an engine around a loaded dictionary.
func New(dict *dictionary.Dictionary) *Engine {
	return &Engine{dict: dict}
}

// Dictionary exposes the engine's term dictionary to callers that need
// term metadata (UI term lists, feedback validation).
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// MapPriorities runs the rule-based pipeline over all inputs. Blank
// inputs are dropped; the rest are mapped in order.
func (e *Engine) MapPriorities(inputs []string) PriorityAnalysis {
	analysis, _ := e.MapPrioritiesUsing(e.ruleMatch, inputs)
	return analysis
}

// MapPrioritiesUsing is MapPriorities with a pluggable matcher. The
// first matcher error aborts the run so the caller can fall back to the
// rule-based path.
func (e *Engine) MapPrioritiesUsing(match MatchFunc, inputs []string) (PriorityAnalysis, error) {
	var analysis PriorityAnalysis

	for _, raw := range inputs {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		candidates, err := match(normalize.Normalize(raw))
		if err != nil {
			return PriorityAnalysis{}, err
		}
		res := resolver.Resolve(e.dict, raw, candidates)
		analysis.Priorities = append(analysis.Priorities, MappedPriority{
			Original:           raw,
			TermID:             res.Term.ID,
			StandardTerm:       res.Term.StandardTerm,
			Category:           res.Term.Category,
			Confidence:         res.Confidence,
			Nuance:             res.Term.Nuance,
			NeedsClarification: res.NeedsClarification,
			Candidates:         res.Candidates,
			TopicSuggestions:   res.TopicSuggestions,
			Reasoning:          res.Reasoning,
		})
	}

	analysis.Conflicts = conflict.Detect(e.dict, mappedForConflicts(analysis.Priorities))
	analysis.OverallConfidence = meanConfidence(analysis.Priorities)
	return analysis, nil
}

// ClarificationCandidates re-runs the matcher for one priority and
// returns the top three candidates for UI-driven disambiguation.
// Side-effect free and idempotent.
func (e *Engine) ClarificationCandidates(priority string) []matcher.Candidate {
	candidates := matcher.Match(normalize.Normalize(priority), e.dict)
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}

// ApplyFeedback adjusts one mapped priority inside an analysis after
// explicit user feedback. A positive signal pins the priority to the
// selected term at full confidence; a negative one re-flags it for
// clarification. Returns false when the original text is not in the
// analysis or the term id is unknown. Only the given analysis is
// touched — nothing is persisted.
func (e *Engine) ApplyFeedback(analysis *PriorityAnalysis, original, termID string, positive bool) bool {
	term, ok := e.dict.Term(termID)
	if !ok {
		return false
	}
	for i := range analysis.Priorities {
		p := &analysis.Priorities[i]
		if p.Original != original {
			continue
		}
		if positive {
			p.TermID = term.ID
			p.StandardTerm = term.StandardTerm
			p.Category = term.Category
			p.Nuance = term.Nuance
			p.Confidence = 1.0
			p.NeedsClarification = false
			p.Candidates = nil
			p.Reasoning = "Confirmed by user as " + term.StandardTerm + "."
		} else {
			p.NeedsClarification = true
			p.Candidates = e.ClarificationCandidates(original)
		}
		analysis.Conflicts = conflict.Detect(e.dict, mappedForConflicts(analysis.Priorities))
		analysis.OverallConfidence = meanConfidence(analysis.Priorities)
		return true
	}
	return false
}

func (e *Engine) ruleMatch(normalized string) ([]matcher.Candidate, error) {
	return matcher.Match(normalized, e.dict), nil
}

func mappedForConflicts(priorities []MappedPriority) []conflict.Mapped {
	mapped := make([]conflict.Mapped, len(priorities))
	for i, p := range priorities {
		mapped[i] = conflict.Mapped{
			Original: p.Original,
			TermID:   p.TermID,
			Category: p.Category,
		}
	}
	return mapped
}

func meanConfidence(priorities []MappedPriority) float64 {
	if len(priorities) == 0 {
		return 0
	}
	var sum float64
	for _, p := range priorities {
		sum += p.Confidence
	}
	return sum / float64(len(priorities))
}
