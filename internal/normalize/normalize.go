// Package normalize prepares raw priority text for matching. All
// functions are pure and total.
package normalize

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, replaces punctuation with spaces, collapses
// runs of whitespace, and trims. Empty input yields an empty string.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = nonWord.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Tokens splits normalized text into words. The input is normalized
// first, so Tokens can be called on raw text.
func Tokens(text string) []string {
	n := Normalize(text)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// ContentWords returns tokens longer than minLen characters. Used for
// word-overlap scoring, where short words carry no signal.
func ContentWords(text string, minLen int) []string {
	var words []string
	for _, tok := range Tokens(text) {
		if len(tok) > minLen {
			words = append(words, tok)
		}
	}
	return words
}
