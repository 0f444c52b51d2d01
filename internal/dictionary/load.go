package dictionary

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed terms.json
var defaultTerms []byte

// Load parses a dictionary document. Entries are kept in declaration
// order, which the matcher uses as a stable tiebreak. Malformed entries
// (missing standardTerm or plainEnglish) are skipped and reported as
// warnings rather than failing the whole load; a missing fallback entry
// is the one hard error besides invalid JSON.
func Load(data []byte) (*Dictionary, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("dictionary: parse: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("dictionary: expected top-level object, got %v", tok)
	}

	d := &Dictionary{byID: make(map[string]int)}
	var warnings []string
	haveFallback := false

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("dictionary: parse key: %w", err)
		}
		id := keyTok.(string)

		var term PolicyTerm
		if err := dec.Decode(&term); err != nil {
			return nil, nil, fmt.Errorf("dictionary: parse entry %q: %w", id, err)
		}
		term.ID = id

		if ws := validate(&term); len(ws) > 0 {
			warnings = append(warnings, ws...)
			if term.StandardTerm == "" || term.PlainEnglish == "" {
				continue
			}
		}
		lowercase(&term)

		if id == FallbackID {
			haveFallback = true
			d.fallback = term
			continue
		}
		if _, dup := d.byID[id]; dup {
			warnings = append(warnings, fmt.Sprintf("duplicate term id %q: later entry ignored", id))
			continue
		}
		d.byID[id] = len(d.terms)
		d.terms = append(d.terms, term)
	}

	if !haveFallback {
		return nil, warnings, fmt.Errorf("dictionary: reserved %q entry is missing", FallbackID)
	}
	return d, warnings, nil
}

// LoadFile reads and parses a dictionary document from disk.
func LoadFile(path string) (*Dictionary, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dictionary: read %s: %w", path, err)
	}
	return Load(data)
}

// Default returns the embedded dictionary shipped with the binary.
func Default() *Dictionary {
	d, _, err := Load(defaultTerms)
	if err != nil {
		// The embedded dictionary is validated by tests; a parse failure
		// here means a broken build.
		panic(err)
	}
	return d
}

// validate reports problems with a single entry. Missing required fields
// make the entry unusable; out-of-range nuance weights are clamped.
func validate(t *PolicyTerm) []string {
	var ws []string
	if t.StandardTerm == "" {
		ws = append(ws, fmt.Sprintf("term %q: missing standardTerm, entry skipped", t.ID))
	}
	if t.PlainEnglish == "" {
		ws = append(ws, fmt.Sprintf("term %q: missing plainEnglish, entry skipped", t.ID))
	}
	if t.Category == "" {
		t.Category = CategoryGeneral
	}
	for dim, w := range t.Nuance {
		if w < -1 || w > 1 {
			ws = append(ws, fmt.Sprintf("term %q: nuance %s=%.2f out of [-1,1], clamped", t.ID, dim, w))
			if w < -1 {
				t.Nuance[dim] = -1
			} else {
				t.Nuance[dim] = 1
			}
		}
	}
	return ws
}

// lowercase folds all match data so the matcher can compare against
// normalized input directly.
func lowercase(t *PolicyTerm) {
	for i, p := range t.PlainLanguage {
		t.PlainLanguage[i] = strings.ToLower(p)
	}
	for i, k := range t.Keywords {
		t.Keywords[i] = strings.ToLower(k)
	}
	for i, w := range t.InclusionWords {
		t.InclusionWords[i] = strings.ToLower(w)
	}
	for i, w := range t.ExclusionWords {
		t.ExclusionWords[i] = strings.ToLower(w)
	}
}
