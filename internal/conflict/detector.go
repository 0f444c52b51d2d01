// Package conflict finds ideological contradictions in a set of mapped
// priorities. Three independent sources are checked: declared term
// pairs, same-category opposite-sentiment inputs, and approach-level
// declarations. All checks are pairwise over the mapped set.
package conflict

import (
	"fmt"

	"github.com/karaleary/civimap/internal/dictionary"
)

// Severity grades how sharp a detected conflict is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Type classifies what kind of tension was found.
type Type string

const (
	TypePolicy         Type = "policy"
	TypeResource       Type = "resource"
	TypeIdeology       Type = "ideology"
	TypeImplementation Type = "implementation"
)

// Mapped is the slice of a mapped priority the detector needs.
type Mapped struct {
	Original string
	TermID   string
	Category dictionary.Category
}

// Result is one detected conflict between two priorities.
type Result struct {
	Priorities          []string `json:"priorities"`
	Reason              string   `json:"reason"`
	Severity            Severity `json:"severity"`
	Type                Type     `json:"type,omitempty"`
	PossibleCompromises []string `json:"possibleCompromises,omitempty"`
}

// Detect runs all conflict checks over the mapped set and returns the
// deduplicated union. Fallback-mapped priorities never conflict.
func Detect(dict *dictionary.Dictionary, mapped []Mapped) []Result {
	var results []Result

	for i := 0; i < len(mapped); i++ {
		for j := i + 1; j < len(mapped); j++ {
			a, b := mapped[i], mapped[j]
			if a.TermID == dictionary.FallbackID || b.TermID == dictionary.FallbackID {
				continue
			}
			results = append(results, pairConflicts(dict, a, b)...)
		}
	}

	return dedupe(results)
}

func pairConflicts(dict *dictionary.Dictionary, a, b Mapped) []Result {
	var results []Result
	priorities := []string{a.Original, b.Original}

	if decl, ok := LookupDeclared(a.TermID, b.TermID); ok {
		results = append(results, Result{
			Priorities:          priorities,
			Reason:              decl.Reason,
			Severity:            decl.Severity,
			Type:                decl.Type,
			PossibleCompromises: decl.Compromises,
		})
	} else if opposing(dict, a.TermID, b.TermID) {
		// Opposing-term declarations not covered by the static table
		// still surface as a generic ideological tension.
		results = append(results, Result{
			Priorities: priorities,
			Reason:     fmt.Sprintf("%s and %s represent opposing policy positions", standardTerm(dict, a.TermID), standardTerm(dict, b.TermID)),
			Severity:   SeverityHigh,
			Type:       TypeIdeology,
		})
	}

	if r, ok := categorySentimentConflict(a, b); ok {
		results = append(results, r)
	}

	results = append(results, approachConflicts(dict, a, b)...)
	return results
}

// categorySentimentConflict flags two priorities in the same category
// pulling in opposite sentiment directions.
func categorySentimentConflict(a, b Mapped) (Result, bool) {
	if a.Category == "" || a.Category != b.Category {
		return Result{}, false
	}
	sa, sb := ClassifySentiment(a.Original), ClassifySentiment(b.Original)
	if sa == SentimentNeutral || sb == SentimentNeutral || sa == sb {
		return Result{}, false
	}
	return Result{
		Priorities: []string{a.Original, b.Original},
		Reason:     fmt.Sprintf("These priorities both concern %s policy but pull in opposite directions", a.Category),
		Severity:   SeverityMedium,
		Type:       TypePolicy,
	}, true
}

// approachConflicts checks ConflictingApproaches declarations in both
// directions and carries the declared compromise into the result.
func approachConflicts(dict *dictionary.Dictionary, a, b Mapped) []Result {
	var results []Result
	check := func(from, to Mapped) {
		term, ok := dict.Term(from.TermID)
		if !ok {
			return
		}
		for _, ac := range term.ConflictingApproaches {
			if ac.TermID != to.TermID {
				continue
			}
			r := Result{
				Priorities: []string{a.Original, b.Original},
				Reason: fmt.Sprintf("%s and %s take conflicting approaches to the same problem",
					term.StandardTerm, standardTerm(dict, to.TermID)),
				Severity: SeverityMedium,
				Type:     TypeImplementation,
			}
			if ac.Compromise != "" {
				r.PossibleCompromises = []string{ac.Compromise}
			}
			results = append(results, r)
		}
	}
	check(a, b)
	check(b, a)
	return results
}

func opposing(dict *dictionary.Dictionary, idA, idB string) bool {
	oneWay := func(from, to string) bool {
		term, ok := dict.Term(from)
		if !ok {
			return false
		}
		for _, op := range term.OpposingTermIDs {
			if op == to {
				return true
			}
		}
		return false
	}
	return oneWay(idA, idB) || oneWay(idB, idA)
}

func standardTerm(dict *dictionary.Dictionary, id string) string {
	if term, ok := dict.Term(id); ok {
		return term.StandardTerm
	}
	return id
}

// dedupe collapses results that name the same unordered priority pair
// for the same reason. Distinct reasons for one pair are kept.
func dedupe(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	var out []Result
	for _, r := range results {
		key := pairKey(r.Priorities) + "|" + r.Reason
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func pairKey(priorities []string) string {
	if len(priorities) == 2 && priorities[1] < priorities[0] {
		return priorities[1] + "\x00" + priorities[0]
	}
	key := ""
	for _, p := range priorities {
		key += p + "\x00"
	}
	return key
}
