// Package dictionary defines the canonical policy term model and loads
// term dictionaries from JSON. A dictionary is read-only after load and
// safe to share across concurrent mapping calls.
package dictionary

// Category is the topic bucket a policy term belongs to.
type Category string

const (
	CategoryEconomic       Category = "economic"
	CategoryEnvironmental  Category = "environmental"
	CategoryHealthcare     Category = "healthcare"
	CategoryEducation      Category = "education"
	CategorySocial         Category = "social"
	CategoryGovernance     Category = "governance"
	CategorySecurity       Category = "security"
	CategoryTechnology     Category = "technology"
	CategoryInfrastructure Category = "infrastructure"
	CategoryGeneral        Category = "general"
)

// FallbackID is the reserved dictionary key for the sentinel term returned
// when an input matches nothing. The fallback entry is excluded from
// normal matching.
const FallbackID = "fallback"

// ApproachConflict declares that a term's preferred approach clashes with
// another term's, along with a suggested middle ground.
type ApproachConflict struct {
	TermID     string `json:"termId"`
	Compromise string `json:"compromise,omitempty"`
}

// PolicyTerm is one canonical policy position.
type PolicyTerm struct {
	// ID is the dictionary key. Unique across the dictionary.
	ID string `json:"-"`

	StandardTerm string `json:"standardTerm"`
	PlainEnglish string `json:"plainEnglish"`

	// PlainLanguage holds trigger phrases in declaration order. A phrase
	// found verbatim in an input is the strongest match signal.
	PlainLanguage []string `json:"plainLanguage"`

	// Keywords are weaker signals than trigger phrases.
	Keywords []string `json:"keywords,omitempty"`

	// InclusionWords, when present, gate the term: if the input contains
	// none of them the term's score is penalized to near-zero.
	InclusionWords []string `json:"inclusionWords,omitempty"`

	// ExclusionWords strongly penalize the term when present in the input.
	ExclusionWords []string `json:"exclusionWords,omitempty"`

	Category Category `json:"category"`

	// Nuance maps a nuance dimension name to a signed weight in [-1, 1].
	Nuance map[string]float64 `json:"nuance,omitempty"`

	// OpposingTermIDs declare ideological tension with other terms.
	OpposingTermIDs []string `json:"opposingTermIds,omitempty"`

	// ConflictingApproaches declare implementation-level clashes.
	ConflictingApproaches []ApproachConflict `json:"conflictingApproaches,omitempty"`
}

// Dictionary is an ordered, immutable collection of policy terms plus the
// reserved fallback entry.
type Dictionary struct {
	terms    []PolicyTerm
	byID     map[string]int
	fallback PolicyTerm
}

// Terms returns all matchable terms in declaration order. The fallback
// entry is not included.
func (d *Dictionary) Terms() []PolicyTerm {
	return d.terms
}

// Term looks up a term by id. The fallback entry is addressable here.
func (d *Dictionary) Term(id string) (PolicyTerm, bool) {
	if id == FallbackID {
		return d.fallback, true
	}
	i, ok := d.byID[id]
	if !ok {
		return PolicyTerm{}, false
	}
	return d.terms[i], true
}

// Fallback returns the sentinel term used when nothing matches.
func (d *Dictionary) Fallback() PolicyTerm {
	return d.fallback
}

// Len returns the number of matchable terms, excluding the fallback.
func (d *Dictionary) Len() int {
	return len(d.terms)
}
