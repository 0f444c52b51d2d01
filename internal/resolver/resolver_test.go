package resolver

import (
	"testing"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyCandidatesFallsBack(t *testing.T) {
	d := dictionary.Default()

	res := Resolve(d, "asdkjasdkj nonsense text", nil)

	assert.Equal(t, dictionary.FallbackID, res.Term.ID)
	assert.Equal(t, 0.0, res.Confidence)
	assert.True(t, res.NeedsClarification)
	assert.NotEmpty(t, res.TopicSuggestions, "fallback always offers suggestions")
	assert.Empty(t, res.Candidates)
}

func TestResolveConfidentMatch(t *testing.T) {
	d := dictionary.Default()
	cands := []matcher.Candidate{
		{TermID: "universalHealthcare", StandardTerm: "Universal Healthcare", Confidence: 0.92, MatchedPhrases: []string{"medicare for all"}},
		{TermID: "lowerDrugPrices", StandardTerm: "Lower Prescription Drug Prices", Confidence: 0.12},
	}

	res := Resolve(d, "I support medicare for all", cands)

	assert.Equal(t, "universalHealthcare", res.Term.ID)
	assert.False(t, res.NeedsClarification)
	assert.Empty(t, res.Candidates, "no alternatives attached on a confident match")
	assert.Contains(t, res.Reasoning, "Strong match")
	assert.Contains(t, res.Reasoning, "medicare for all")
}

func TestResolveLowConfidenceNeedsClarification(t *testing.T) {
	d := dictionary.Default()
	cands := []matcher.Candidate{
		{TermID: "taxRelief", StandardTerm: "Tax Relief", Confidence: 0.25},
		{TermID: "jobCreation", StandardTerm: "Job Creation", Confidence: 0.2},
		{TermID: "minimumWage", StandardTerm: "Minimum Wage Increase", Confidence: 0.1},
		{TermID: "affordableHousing", StandardTerm: "Affordable Housing", Confidence: 0.05},
	}

	res := Resolve(d, "money stuff", cands)

	assert.True(t, res.NeedsClarification)
	assert.Len(t, res.Candidates, 3, "at most three alternatives attached")
	assert.Contains(t, res.Reasoning, "Weak match")
}

func TestResolveCompetingCandidatesNeedClarification(t *testing.T) {
	d := dictionary.Default()
	cands := []matcher.Candidate{
		{TermID: "gunControl", StandardTerm: "Gun Safety Regulation", Confidence: 0.85},
		{TermID: "gunRights", StandardTerm: "Gun Rights", Confidence: 0.7},
	}

	res := Resolve(d, "guns", cands)

	// Top is high but the runner-up clears the threshold too.
	assert.True(t, res.NeedsClarification)
	assert.Equal(t, "gunControl", res.Term.ID)
	assert.Len(t, res.Candidates, 2)
	assert.Contains(t, res.Reasoning, "Multiple plausible matches")
}

func TestResolvePartialMatchReasoning(t *testing.T) {
	d := dictionary.Default()
	cands := []matcher.Candidate{
		{TermID: "lowerDrugPrices", StandardTerm: "Lower Prescription Drug Prices", Confidence: 0.55},
	}

	res := Resolve(d, "drug costs", cands)

	assert.False(t, res.NeedsClarification)
	assert.Contains(t, res.Reasoning, "Partial match")
}

func TestSuggestTopicsRanked(t *testing.T) {
	topics := SuggestTopics("schools and teachers need money for education")

	require.NotEmpty(t, topics)
	assert.Equal(t, "Education", topics[0], "three education hits outrank one economy hit")
	assert.LessOrEqual(t, len(topics), 3)
}

func TestSuggestTopicsDefaults(t *testing.T) {
	topics := SuggestTopics("asdkjasdkj nonsense text")
	assert.Equal(t, []string{"Economy & taxes", "Healthcare", "Education"}, topics)
}

func TestSuggestTopicsTruncated(t *testing.T) {
	topics := SuggestTopics("taxes health schools climate police voting war")
	assert.Len(t, topics, 3)
}

func TestStrength(t *testing.T) {
	assert.Equal(t, "strong", Strength(0.9))
	assert.Equal(t, "strong", Strength(0.8))
	assert.Equal(t, "partial", Strength(0.5))
	assert.Equal(t, "weak", Strength(0.39))
}
