// Package textanalysis extracts normalized word tokens from free text and
// reduces them to light stems for keyword matching.
package textanalysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenize lowercases text, blanks out characters outside the word alphabet,
// splits on whitespace and drops short tokens and stop words. Tokens are
// returned in text order, repeats included.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	fields := strings.Fields(normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTokenLength || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// normalize composes text to NFC, lowercases it with Norwegian rules and
// replaces every rune outside the word alphabet with a space.
func normalize(text string) string {
	// cases.Caser is stateful, so one per call.
	lowered := cases.Lower(language.Norwegian).String(norm.NFC.String(text))

	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, lowered)
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case 'æ', 'ø', 'å', 'é', 'è', 'ê', 'ó', 'ò', 'ô', 'ä', 'ö', 'ü':
		return true
	}
	return false
}
