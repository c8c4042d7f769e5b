package textanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "punctuation becomes whitespace and repeats are kept",
			text: "Bankid innlogging feiler, bankid er treg",
			want: []string{"bankid", "innlogging", "feiler", "bankid", "treg"},
		},
		{
			name: "stop words and short tokens are dropped",
			text: "Jeg liker ikke appen på mobil",
			want: []string{"liker", "appen", "mobil"},
		},
		{
			name: "norwegian letters survive lowercasing",
			text: "SØKNADEN ble Årsak til frustrasjon!!",
			want: []string{"søknaden", "årsak", "frustrasjon"},
		},
		{
			name: "digits are part of the alphabet",
			text: "feil 404 på side 2",
			want: []string{"feil", "404", "side"},
		},
		{
			name: "emoji and symbols are removed",
			text: "bra😀 tjeneste 👍 #nav",
			want: []string{"bra", "tjeneste", "nav"},
		},
		{
			name: "blank text",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"innlogging", "innlogg"},
		{"innloggingen", "innlogg"},
		{"feiler", "feil"},
		{"bankid", "bankid"},
		{"appen", "app"},
		{"bilen", "bil"},
		{"tre", "tre"}, // stripping "e" would leave two runes
		{"hus", "hus"}, // same for "s"
		{"søknader", "søknad"},
		{"treg", "treg"},
		{"skjema", "skjem"},
		{"skjemaet", "skjem"},
		{"skjemaer", "skjem"},
		{"skjemaene", "skjem"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.token))
		})
	}
}

func TestSuffixesAreLongestFirst(t *testing.T) {
	for i := 1; i < len(suffixes); i++ {
		assert.GreaterOrEqual(t, len(suffixes[i-1]), len(suffixes[i]))
	}
}

func TestStemSet(t *testing.T) {
	set := StemSet("Bankid innlogging feiler, bankid er treg")
	assert.Len(t, set, 4)
	assert.Contains(t, set, "bankid")
	assert.Contains(t, set, "innlogg")
}

func TestStem_NounKeepsOneStemAcrossForms(t *testing.T) {
	want := Stem("skjema")
	for _, form := range []string{"skjemaet", "skjemaer", "skjemaene"} {
		assert.Equal(t, want, Stem(form), form)
	}
}

func TestKeywordStems(t *testing.T) {
	got := KeywordStems([]string{" BankID ", "", "innlogging", "innloggingen", "   "})
	assert.Equal(t, [][]string{{"bankid"}, {"innlogg"}}, got)
}

func TestKeywordStems_NormalizedLikeResponses(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		want    [][]string
	}{
		{name: "decomposed letters are composed", keyword: "A\u030Arsak", want: [][]string{{"årsak"}}},
		{name: "uppercase norwegian letters", keyword: "SØKNADER", want: [][]string{{"søknad"}}},
		{name: "punctuation splits into a group", keyword: "NAV-konto", want: [][]string{{"nav", "konto"}}},
		{name: "stop words leave nothing", keyword: "ikke", want: [][]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordStems([]string{tt.keyword}))
		})
	}
}

func TestKeywordStems_MatchResponseStems(t *testing.T) {
	set := StemSet("Årsak til feil var skjemaene")
	for _, group := range KeywordStems([]string{"A\u030Arsak", "skjema"}) {
		for _, s := range group {
			assert.Contains(t, set, s)
		}
	}
}

func TestKeywordStems_Empty(t *testing.T) {
	assert.Empty(t, KeywordStems(nil))
}
