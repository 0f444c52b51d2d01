package engine

import "github.com/karaleary/civimap/internal/conflict"

// Alignment grades how a candidate's positions relate to a voter's
// mapped terms. Callers own the rendering; the engine only exposes the
// three-valued classification.
type Alignment string

const (
	AlignmentAligned     Alignment = "aligned"
	AlignmentPartial     Alignment = "partial"
	AlignmentConflicting Alignment = "conflicting"
)

// CompareTermSets classifies the relationship between a voter's mapped
// term ids and another position set (e.g. a candidate's platform). Any
// declared conflict between the sets wins; shared terms without
// conflicts align; everything else is partial.
func CompareTermSets(voter, other []string) Alignment {
	shared := 0
	otherSet := make(map[string]bool, len(other))
	for _, id := range other {
		otherSet[id] = true
	}

	for _, v := range voter {
		if otherSet[v] {
			shared++
		}
		for _, o := range other {
			if _, ok := conflict.LookupDeclared(v, o); ok {
				return AlignmentConflicting
			}
		}
	}

	if shared > 0 {
		return AlignmentAligned
	}
	return AlignmentPartial
}
