package textanalysis

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Stem strips the longest known suffix that leaves at least MinStemLength
// runes. A token with no such suffix is its own stem.
func Stem(token string) string {
	n := utf8.RuneCountInString(token)
	for _, suf := range suffixes {
		if strings.HasSuffix(token, suf) && n-utf8.RuneCountInString(suf) >= MinStemLength {
			return token[:len(token)-len(suf)]
		}
	}
	return token
}

// StemSet tokenizes text and returns the distinct stems
func StemSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[Stem(t)] = struct{}{}
	}
	return set
}

// KeywordStems tokenizes and stems each keyword exactly like response text.
// A keyword that splits into several tokens ("nav-konto") becomes a group
// that matches only when all of its stems occur. Keywords that leave no
// tokens are ignored, as are duplicate groups.
func KeywordStems(keywords []string) [][]string {
	out := make([][]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		tokens := Tokenize(kw)
		if len(tokens) == 0 {
			continue
		}
		group := make([]string, 0, len(tokens))
		for _, t := range tokens {
			s := Stem(t)
			if !slices.Contains(group, s) {
				group = append(group, s)
			}
		}
		key := strings.Join(group, " ")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, group)
	}
	return out
}
