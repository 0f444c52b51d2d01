package session

import (
	"github.com/karaleary/civimap/internal/engine"
	"github.com/karaleary/civimap/internal/normalize"
)

// Learner holds the term confirmations accumulated in one session,
// keyed by normalized priority text. It is a plain in-memory map; use
// Store.LoadLearner to hydrate one from persisted feedback.
type Learner struct {
	confirmed map[string]string
}

func NewLearner() *Learner {
	return &Learner{confirmed: make(map[string]string)}
}

// Confirm records that text maps to termID, replacing any earlier
// confirmation for the same text.
func (l *Learner) Confirm(text, termID string) {
	l.confirmed[normalize.Normalize(text)] = termID
}

// Reject withdraws a confirmation, but only if it still points at
// termID; a later confirmation of a different term is left alone.
func (l *Learner) Reject(text, termID string) {
	key := normalize.Normalize(text)
	if l.confirmed[key] == termID {
		delete(l.confirmed, key)
	}
}

// Lookup returns the confirmed term id for text, if any.
func (l *Learner) Lookup(text string) (string, bool) {
	id, ok := l.confirmed[normalize.Normalize(text)]
	return id, ok
}

// Len reports how many confirmations the learner holds.
func (l *Learner) Len() int {
	return len(l.confirmed)
}

// Apply pins every priority in the analysis that the learner has a
// confirmation for, reusing the engine's feedback path so conflicts and
// overall confidence stay consistent. Returns the number of priorities
// it changed.
func (l *Learner) Apply(e *engine.Engine, analysis *engine.PriorityAnalysis) int {
	applied := 0
	for _, p := range analysis.Priorities {
		termID, ok := l.Lookup(p.Original)
		if !ok {
			continue
		}
		if termID == p.TermID && !p.NeedsClarification {
			continue
		}
		if e.ApplyFeedback(analysis, p.Original, termID, true) {
			applied++
		}
	}
	return applied
}
