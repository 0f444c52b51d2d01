package conflict

import (
	"testing"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDeclaredSymmetric(t *testing.T) {
	forward, okF := LookupDeclared("environmentalProtection", "fossilFuelIndustry")
	reverse, okR := LookupDeclared("fossilFuelIndustry", "environmentalProtection")

	require.True(t, okF)
	require.True(t, okR)
	assert.Equal(t, forward, reverse)
	assert.Equal(t, SeverityHigh, forward.Severity)
}

func TestLookupDeclaredMiss(t *testing.T) {
	_, ok := LookupDeclared("universalHealthcare", "taxCutsForMiddleClass")
	assert.False(t, ok)
}

func TestDetectDeclaredPair(t *testing.T) {
	d := dictionary.Default()
	mapped := []Mapped{
		{Original: "protect the environment", TermID: "environmentalProtection", Category: dictionary.CategoryEnvironmental},
		{Original: "support oil and gas industry jobs", TermID: "fossilFuelIndustry", Category: dictionary.CategoryEconomic},
	}

	results := Detect(d, mapped)

	require.Len(t, results, 1)
	assert.Equal(t, SeverityHigh, results[0].Severity)
	assert.ElementsMatch(t, []string{"protect the environment", "support oil and gas industry jobs"}, results[0].Priorities)
	assert.NotEmpty(t, results[0].PossibleCompromises)
}

func TestDetectCategorySentiment(t *testing.T) {
	d := dictionary.Default()
	mapped := []Mapped{
		{Original: "lower taxes", TermID: "taxRelief", Category: dictionary.CategoryEconomic},
		{Original: "raise taxes on the wealthy", TermID: "progressiveTaxation", Category: dictionary.CategoryEconomic},
	}

	results := Detect(d, mapped)

	var foundCategory bool
	for _, r := range results {
		if r.Severity == SeverityMedium && r.Type == TypePolicy {
			assert.Contains(t, r.Reason, "economic")
			foundCategory = true
		}
	}
	assert.True(t, foundCategory, "expected a medium category-sentiment conflict, got %+v", results)
}

func TestDetectOpposingTerms(t *testing.T) {
	d := dictionary.Default()
	mapped := []Mapped{
		{Original: "medicare for all", TermID: "universalHealthcare", Category: dictionary.CategoryHealthcare},
		{Original: "keep my doctor and private insurance", TermID: "privateHealthcare", Category: dictionary.CategoryHealthcare},
	}

	results := Detect(d, mapped)

	require.NotEmpty(t, results)
	var foundOpposing bool
	for _, r := range results {
		if r.Type == TypeIdeology {
			foundOpposing = true
			assert.Equal(t, SeverityHigh, r.Severity)
		}
	}
	assert.True(t, foundOpposing, "opposingTermIds pair should surface as ideology conflict")
}

func TestDetectApproachConflict(t *testing.T) {
	d := dictionary.Default()
	mapped := []Mapped{
		{Original: "fund the police", TermID: "policeFunding", Category: dictionary.CategorySecurity},
		{Original: "police accountability now", TermID: "policeReform", Category: dictionary.CategorySecurity},
	}

	results := Detect(d, mapped)

	require.NotEmpty(t, results)
	var found bool
	for _, r := range results {
		if r.Type == TypeImplementation {
			found = true
			assert.Equal(t, SeverityMedium, r.Severity)
			assert.NotEmpty(t, r.PossibleCompromises, "compromise comes from the declaration")
		}
	}
	assert.True(t, found, "conflictingApproaches declaration should be detected, got %+v", results)
}

func TestDetectFallbackNeverConflicts(t *testing.T) {
	d := dictionary.Default()
	mapped := []Mapped{
		{Original: "gibberish one", TermID: dictionary.FallbackID, Category: dictionary.CategoryGeneral},
		{Original: "gibberish two", TermID: dictionary.FallbackID, Category: dictionary.CategoryGeneral},
	}

	assert.Empty(t, Detect(d, mapped))
}

func TestDetectNoConflicts(t *testing.T) {
	d := dictionary.Default()
	mapped := []Mapped{
		{Original: "I want tax cuts for working families", TermID: "taxCutsForMiddleClass", Category: dictionary.CategoryEconomic},
		{Original: "I support Medicare for all", TermID: "universalHealthcare", Category: dictionary.CategoryHealthcare},
	}

	assert.Empty(t, Detect(d, mapped))
}

func TestDetectDedupes(t *testing.T) {
	d := dictionary.Default()
	// The same pair twice in the set would repeat identical results
	// without deduplication.
	mapped := []Mapped{
		{Original: "protect the environment", TermID: "environmentalProtection", Category: dictionary.CategoryEnvironmental},
		{Original: "support oil and gas industry jobs", TermID: "fossilFuelIndustry", Category: dictionary.CategoryEconomic},
		{Original: "protect the environment", TermID: "environmentalProtection", Category: dictionary.CategoryEnvironmental},
	}

	results := Detect(d, mapped)
	assert.Len(t, results, 1)
}

func TestClassifySentiment(t *testing.T) {
	assert.Equal(t, SentimentNegative, ClassifySentiment("lower taxes"))
	assert.Equal(t, SentimentNegative, ClassifySentiment("ban assault weapons"))
	assert.Equal(t, SentimentPositive, ClassifySentiment("raise taxes on the wealthy"))
	assert.Equal(t, SentimentPositive, ClassifySentiment("support our schools"))
	assert.Equal(t, SentimentNeutral, ClassifySentiment("healthcare"))
	assert.Equal(t, SentimentNeutral, ClassifySentiment("stop and support it"))
}
