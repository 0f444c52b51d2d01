// Package matcher scores normalized input against every term in a
// dictionary and returns ranked candidates. Scoring is deterministic:
// fixed weights, stable ordering, no clock or randomness.
package matcher

import (
	"sort"
	"strings"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/normalize"
)

const (
	// phraseWeight is added per trigger phrase found in the input.
	phraseWeight = 1.0
	// keywordWeight is strictly less than phraseWeight per hit.
	keywordWeight = 0.4
	// overlapBonus rewards input words that appear in a term's trigger
	// vocabulary without a full phrase hit.
	overlapBonus = 0.15
	// exclusionPenalty suppresses a term when an exclusion word appears.
	exclusionPenalty = 5.0
	// inclusionPenalty is a near-hard gate: applied when a term declares
	// inclusion words and the input contains none of them.
	inclusionPenalty = 10.0
	// scoreDivisor converts the raw score to confidence. A single phrase
	// match lands at 1.0/1.25 = 0.8.
	scoreDivisor = 1.25
	// minOverlapLen filters short words out of overlap scoring.
	minOverlapLen = 3
)

// Candidate is one (input, term) match produced by Match.
type Candidate struct {
	TermID         string   `json:"termId"`
	StandardTerm   string   `json:"standardTerm"`
	Confidence     float64  `json:"confidence"`
	MatchedPhrases []string `json:"matchedPhrases,omitempty"`
}

// Match scores normalized input against every term and returns candidates
// with positive scores, sorted by confidence descending. Ties keep
// dictionary declaration order. An input matching nothing yields nil.
func Match(normalized string, dict *dictionary.Dictionary) []Candidate {
	if normalized == "" {
		return nil
	}
	words := normalize.ContentWords(normalized, minOverlapLen)

	var candidates []Candidate
	for _, term := range dict.Terms() {
		score, matched := scoreTerm(normalized, words, term)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, Candidate{
			TermID:         term.ID,
			StandardTerm:   term.StandardTerm,
			Confidence:     clamp01(score / scoreDivisor),
			MatchedPhrases: matched,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

func scoreTerm(input string, words []string, term dictionary.PolicyTerm) (float64, []string) {
	var score float64
	var matched []string

	// Exclusion words suppress the term outright.
	for _, ex := range term.ExclusionWords {
		if containsWordOrPhrase(input, ex) {
			score -= exclusionPenalty
			break
		}
	}

	// Inclusion gate: without at least one inclusion word the term is
	// penalized to near-zero, but stays comparable and sortable.
	if len(term.InclusionWords) > 0 {
		found := false
		for _, in := range term.InclusionWords {
			if containsWordOrPhrase(input, in) {
				found = true
				break
			}
		}
		if !found {
			score -= inclusionPenalty
		}
	}

	// Trigger phrases: the primary signal.
	for _, phrase := range term.PlainLanguage {
		if phrase != "" && strings.Contains(input, phrase) {
			score += phraseWeight
			matched = append(matched, phrase)
		}
	}

	// Keywords: weaker than phrases.
	for _, kw := range term.Keywords {
		if containsWordOrPhrase(input, kw) {
			score += keywordWeight
		}
	}

	// Nuance triggers: signed bonus, at most once per dimension.
	// Dimensions are visited in sorted order so float accumulation is
	// reproducible across runs.
	triggers := dictionary.NuanceTriggers()
	dims := make([]string, 0, len(term.Nuance))
	for dim := range term.Nuance {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		for _, trig := range triggers[dim] {
			if strings.Contains(input, trig) {
				score += term.Nuance[dim]
				break
			}
		}
	}

	// Word overlap: partial credit for vocabulary hits that phrase
	// matching missed.
	vocab := triggerVocabulary(term)
	for _, w := range words {
		if vocab[w] {
			score += overlapBonus
		}
	}

	return score, matched
}

// containsWordOrPhrase matches multi-word entries by substring and
// single words on word boundaries, so "rent" does not hit "parents".
func containsWordOrPhrase(input, entry string) bool {
	if entry == "" {
		return false
	}
	if strings.Contains(entry, " ") {
		return strings.Contains(input, entry)
	}
	return strings.Contains(" "+input+" ", " "+entry+" ")
}

func triggerVocabulary(term dictionary.PolicyTerm) map[string]bool {
	vocab := make(map[string]bool)
	for _, phrase := range term.PlainLanguage {
		for _, w := range strings.Split(phrase, " ") {
			if len(w) > minOverlapLen {
				vocab[w] = true
			}
		}
	}
	return vocab
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
