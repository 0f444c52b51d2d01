package matcher

import (
	"testing"

	"github.com/karaleary/civimap/internal/dictionary"
	"github.com/karaleary/civimap/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	doc := []byte(`{
		"taxRelief": {
			"standardTerm": "Tax Relief", "plainEnglish": "lower taxes overall",
			"plainLanguage": ["lower taxes", "taxes are too high"],
			"keywords": ["overtaxed"],
			"inclusionWords": ["tax", "taxes"],
			"exclusionWords": ["wealthy"],
			"category": "economic",
			"nuance": {"economic_impact": 0.8}
		},
		"wealthTax": {
			"standardTerm": "Wealth Tax", "plainEnglish": "tax the wealthy",
			"plainLanguage": ["tax the wealthy", "taxes on the wealthy"],
			"inclusionWords": ["tax", "taxes"],
			"category": "economic"
		},
		"cleanAir": {
			"standardTerm": "Clean Air", "plainEnglish": "air quality",
			"plainLanguage": ["clean air", "air pollution"],
			"keywords": ["pollution"],
			"category": "environmental"
		},
		"fallback": {"standardTerm": "None", "plainEnglish": "none", "plainLanguage": [], "category": "general"}
	}`)
	d, warnings, err := dictionary.Load(doc)
	require.NoError(t, err)
	require.Empty(t, warnings)
	return d
}

func TestPhraseMatchConfidence(t *testing.T) {
	d := testDict(t)
	cands := Match(normalize.Normalize("lower taxes"), d)

	require.NotEmpty(t, cands)
	assert.Equal(t, "taxRelief", cands[0].TermID)
	// One phrase hit plus overlap credit must clear 0.8.
	assert.GreaterOrEqual(t, cands[0].Confidence, 0.8)
	assert.Contains(t, cands[0].MatchedPhrases, "lower taxes")
}

func TestKeywordWeakerThanPhrase(t *testing.T) {
	d := testDict(t)

	phrase := Match(normalize.Normalize("there is too much air pollution"), d)
	keyword := Match(normalize.Normalize("pollution bothers me"), d)

	require.NotEmpty(t, phrase)
	require.NotEmpty(t, keyword)
	assert.Equal(t, "cleanAir", phrase[0].TermID)
	assert.Equal(t, "cleanAir", keyword[0].TermID)
	assert.Greater(t, phrase[0].Confidence, keyword[0].Confidence)
}

func TestExclusionDominance(t *testing.T) {
	d := testDict(t)

	// "wealthy" is an exclusion word for taxRelief; the genuinely
	// matching wealthTax term must win.
	cands := Match(normalize.Normalize("raise taxes on the wealthy"), d)
	require.NotEmpty(t, cands)
	assert.Equal(t, "wealthTax", cands[0].TermID)
	for _, c := range cands {
		assert.NotEqual(t, "taxRelief", c.TermID)
	}
}

func TestInclusionGate(t *testing.T) {
	d := testDict(t)

	// No "tax"/"taxes" word anywhere: both tax terms must be gated out
	// even though "lower" overlaps taxRelief's vocabulary.
	cands := Match(normalize.Normalize("lower the cost of living"), d)
	for _, c := range cands {
		assert.NotEqual(t, "taxRelief", c.TermID)
		assert.NotEqual(t, "wealthTax", c.TermID)
	}
}

func TestNuanceTriggerBonus(t *testing.T) {
	d := testDict(t)

	plain := Match(normalize.Normalize("my taxes"), d)
	nuanced := Match(normalize.Normalize("my taxes eat up my hard-earned money"), d)

	require.NotEmpty(t, plain)
	require.NotEmpty(t, nuanced)
	// "hard earned money" is an economic_impact trigger; taxRelief
	// declares that dimension at +0.8.
	assert.Equal(t, "taxRelief", nuanced[0].TermID)
	assert.Greater(t, nuanced[0].Confidence, plain[0].Confidence)
}

func TestWordOverlapBonus(t *testing.T) {
	d := testDict(t)

	// No full phrase, no keyword — only the vocabulary word "taxes".
	cands := Match(normalize.Normalize("what about my taxes"), d)
	require.NotEmpty(t, cands)
	assert.Equal(t, "taxRelief", cands[0].TermID)
	assert.Less(t, cands[0].Confidence, 0.4, "overlap alone must stay below the clarification threshold")
}

func TestSingleWordBoundary(t *testing.T) {
	d := testDict(t)

	// "parents" must not hit any single-word entry by substring.
	cands := Match(normalize.Normalize("my parents"), d)
	assert.Empty(t, cands)
}

func TestNoMatchReturnsEmpty(t *testing.T) {
	d := testDict(t)
	assert.Empty(t, Match(normalize.Normalize("asdkjasdkj nonsense text"), d))
	assert.Empty(t, Match("", d))
}

func TestConfidenceClamped(t *testing.T) {
	d := testDict(t)

	// Two phrase hits, a keyword, and overlap: raw score well above the
	// divisor, confidence must cap at 1.
	cands := Match(normalize.Normalize("lower taxes because taxes are too high and we are overtaxed"), d)
	require.NotEmpty(t, cands)
	assert.Equal(t, 1.0, cands[0].Confidence)
	for _, c := range cands {
		assert.GreaterOrEqual(t, c.Confidence, 0.0)
		assert.LessOrEqual(t, c.Confidence, 1.0)
	}
}

func TestDeterministicOrdering(t *testing.T) {
	d := testDict(t)
	input := normalize.Normalize("lower taxes and clean air")

	first := Match(input, d)
	for range 10 {
		again := Match(input, d)
		assert.Equal(t, first, again)
	}
}

func TestDefaultDictionaryScenarios(t *testing.T) {
	d := dictionary.Default()

	cands := Match(normalize.Normalize("I want tax cuts for working families"), d)
	require.NotEmpty(t, cands)
	assert.Equal(t, "taxCutsForMiddleClass", cands[0].TermID)
	assert.GreaterOrEqual(t, cands[0].Confidence, 0.8)

	cands = Match(normalize.Normalize("I support Medicare for all"), d)
	require.NotEmpty(t, cands)
	assert.Equal(t, "universalHealthcare", cands[0].TermID)
	assert.GreaterOrEqual(t, cands[0].Confidence, 0.8)

	cands = Match(normalize.Normalize("support oil and gas industry jobs"), d)
	require.NotEmpty(t, cands)
	assert.Equal(t, "fossilFuelIndustry", cands[0].TermID)
}
