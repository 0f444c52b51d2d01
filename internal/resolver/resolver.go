// Package resolver decides whether a set of match candidates is a
// confident mapping, an ambiguous one needing clarification, or an
// unmatched input that falls back to the sentinel term.
package resolver

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/matcher"
	"github.com/karaleary/civimap/internal/normalize"
)

const (
	// LowConfidence is the clarification threshold: a top candidate
	// below it, or a runner-up above it, flags the mapping as ambiguous.
	LowConfidence = 0.4
	// HighConfidence only shapes the human-readable reasoning text.
	HighConfidence = 0.8

	maxCandidates  = 3
	maxSuggestions = 3
)

// Resolution is the per-priority decision built from ranked candidates.
type Resolution struct {
	Term               dictionary.PolicyTerm
	Confidence         float64
	NeedsClarification bool
	Candidates         []matcher.Candidate
	TopicSuggestions   []string
	Reasoning          string
}

// topicFamilies back the fallback suggestions. They are deliberately
// independent of the term dictionary: broad word families that catch
// inputs the dictionary has no entry for.
var topicFamilies = []struct {
	topic string
	re    *regexp.Regexp
}{
	{"Economy & taxes", regexp.MustCompile(`\b(tax(es|ed)?|money|income|jobs?|wages?|economy|inflation|costs?|spending)\b`)},
	{"Healthcare", regexp.MustCompile(`\b(health(care)?|medical|doctors?|insurance|drugs?|hospitals?|medicine)\b`)},
	{"Education", regexp.MustCompile(`\b(schools?|education|teachers?|students?|college|tuition)\b`)},
	{"Environment", regexp.MustCompile(`\b(environment(al)?|climate|pollution|energy|water|wildlife)\b`)},
	{"Public safety", regexp.MustCompile(`\b(crime|police|safety|security|violence|drugs?)\b`)},
	{"Government & elections", regexp.MustCompile(`\b(government|corruption|voting|elections?|democracy|congress)\b`)},
	{"Foreign policy", regexp.MustCompile(`\b(war|foreign|trade|military|troops|allies)\b`)},
}

// defaultSuggestions are offered when no family matches at all.
var defaultSuggestions = []string{"Economy & taxes", "Healthcare", "Education"}

// Resolve turns ranked candidates for one raw input into a Resolution.
// Pure given its inputs and the two threshold constants.
func Resolve(dict *dictionary.Dictionary, rawInput string, candidates []matcher.Candidate) Resolution {
	if len(candidates) == 0 {
		return Resolution{
			Term:               dict.Fallback(),
			Confidence:         0,
			NeedsClarification: true,
			TopicSuggestions:   SuggestTopics(rawInput),
			Reasoning:          "No clear match found; clarification needed. Consider picking a suggested topic.",
		}
	}

	top := candidates[0]
	term, ok := dict.Term(top.TermID)
	if !ok {
		// Candidates always come from the same dictionary; a miss here
		// means the caller mixed dictionaries.
		term = dict.Fallback()
	}

	res := Resolution{
		Term:       term,
		Confidence: top.Confidence,
	}

	switch {
	case top.Confidence < LowConfidence:
		res.NeedsClarification = true
		res.Candidates = topN(candidates, maxCandidates)
		res.Reasoning = fmt.Sprintf("Weak match: %q resembles %s (confidence %.2f); please confirm.",
			rawInput, term.StandardTerm, top.Confidence)
	case len(candidates) >= 2 && candidates[1].Confidence >= LowConfidence:
		res.NeedsClarification = true
		res.Candidates = topN(candidates, maxCandidates)
		res.Reasoning = fmt.Sprintf("Multiple plausible matches: %s vs %s; please choose.",
			term.StandardTerm, candidates[1].StandardTerm)
	default:
		res.Reasoning = reasoningFor(term, top)
	}
	return res
}

func reasoningFor(term dictionary.PolicyTerm, top matcher.Candidate) string {
	strength := "Partial match"
	if top.Confidence >= HighConfidence {
		strength = "Strong match"
	}
	if len(top.MatchedPhrases) > 0 {
		return fmt.Sprintf("%s: mapped to %s via %q (confidence %.2f).",
			strength, term.StandardTerm, top.MatchedPhrases[0], top.Confidence)
	}
	return fmt.Sprintf("%s: mapped to %s (confidence %.2f).",
		strength, term.StandardTerm, top.Confidence)
}

// SuggestTopics ranks topic families by how many of their words appear
// in the raw input, returning at most three. Inputs matching no family
// get generic defaults so the caller always has something to offer.
func SuggestTopics(rawInput string) []string {
	input := normalize.Normalize(rawInput)

	type scored struct {
		topic string
		hits  int
	}
	var ranked []scored
	for _, f := range topicFamilies {
		if n := len(f.re.FindAllString(input, -1)); n > 0 {
			ranked = append(ranked, scored{f.topic, n})
		}
	}
	if len(ranked) == 0 {
		return append([]string(nil), defaultSuggestions...)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].hits > ranked[j].hits })
	var topics []string
	for _, s := range ranked {
		topics = append(topics, s.topic)
		if len(topics) == maxSuggestions {
			break
		}
	}
	return topics
}

func topN(candidates []matcher.Candidate, n int) []matcher.Candidate {
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]matcher.Candidate, len(candidates))
	copy(out, candidates)
	return out
}

// Strength labels a confidence value for presentation.
func Strength(confidence float64) string {
	switch {
	case confidence >= HighConfidence:
		return "strong"
	case confidence >= LowConfidence:
		return "partial"
	default:
		return "weak"
	}
}
