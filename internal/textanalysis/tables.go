package textanalysis

import "sort"

// MinTokenLength is the shortest token kept by Tokenize
const MinTokenLength = 3

// MinStemLength is the shortest remainder Stem will leave behind
const MinStemLength = 3

// Norwegian (bokmål) function words plus common filler in feedback text.
var stopWords = toSet([]string{
	"alle", "andre", "at", "av", "bare", "begge", "ble", "blei", "bli", "blir", "blitt",
	"både", "båe", "da", "de", "deg", "dei", "deim", "deira", "deires", "dem", "den",
	"denne", "der", "dere", "deres", "det", "dette", "di", "din", "disse", "ditt", "du",
	"dykk", "dykkar", "då", "eg", "ein", "eit", "eitt", "eller", "elles", "en", "enn",
	"er", "et", "ett", "etter", "for", "fordi", "fra", "før", "ha", "hadde", "han",
	"hans", "har", "hennar", "henne", "hennes", "her", "hjå", "ho", "hoe", "honom",
	"hoss", "hossen", "hun", "hva", "hvem", "hver", "hvilke", "hvilken", "hvis", "hvor",
	"hvordan", "hvorfor", "i", "ikke", "ikkje", "ingen", "ingi", "inkje", "inn", "inni",
	"ja", "jeg", "kan", "kom", "korleis", "korso", "kun", "kunne", "kva", "kvar",
	"kvarhelst", "kven", "kvi", "kvifor", "man", "mange", "me", "med", "medan", "meg",
	"meget", "mellom", "men", "mi", "min", "mine", "mitt", "mot", "mykje", "må", "måtte",
	"ned", "nei", "no", "noe", "noen", "noka", "noko", "nokon", "nokor", "nokre", "nå",
	"når", "og", "også", "om", "opp", "oss", "over", "på", "samme", "seg", "selv", "si",
	"sia", "sidan", "siden", "sin", "sine", "sitt", "sjøl", "skal", "skulle", "slik",
	"so", "som", "somme", "somt", "så", "sånn", "til", "um", "upp", "ut", "uten", "var",
	"vart", "varte", "ved", "vere", "verte", "vi", "vil", "ville", "vore", "vors",
	"vort", "vår", "være", "vært", "å", "veldig", "litt", "helt", "ganske", "egentlig",
	"bør", "får", "fikk", "gjør", "gjøre", "gjorde", "går", "gikk",
})

// Suffixes stripped by Stem, longest first. Nouns ending in -a keep one stem
// across their definite and plural forms (skjema, skjemaet, skjemaer, skjemaene).
var suffixes = longestFirst([]string{
	"hetene", "ingene", "heten", "ingen", "inger", "elsen", "elser",
	"aene", "ende", "ene", "ane", "het", "ing", "ert", "ast", "aet", "aer",
	"er", "en", "et", "ar", "as",
	"e", "a", "s",
})

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func longestFirst(in []string) []string {
	out := append([]string(nil), in...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// IsStopWord reports whether w is in the fixed stop-word set
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}
