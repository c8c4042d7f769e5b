package analytics

import (
	"sort"

	"innsikt/internal/model"
	"innsikt/internal/textanalysis"
)

const (
	// MaxWordExamples bounds the distinct source responses kept per word
	MaxWordExamples = 5
	// TopWords is the length of the word-frequency table
	TopWords = 30
)

type wordAcc struct {
	count    int
	examples exampleSet
}

// WordFrequencyAccumulator counts surface tokens (no stemming).
type WordFrequencyAccumulator struct {
	context   model.AnalysisContext
	responses int
	words     map[string]*wordAcc
}

// NewWordFrequencyAccumulator creates an accumulator over text answers in ctx
func NewWordFrequencyAccumulator(ctx model.AnalysisContext) *WordFrequencyAccumulator {
	return &WordFrequencyAccumulator{
		context: ctx,
		words:   make(map[string]*wordAcc),
	}
}

// Add counts every text answer of the record in the accumulator's context
func (a *WordFrequencyAccumulator) Add(idx int, r model.FeedbackRecord) {
	for _, resp := range textResponses(idx, r, a.context) {
		a.AddResponse(resp)
	}
}

// AddResponse counts every token; a response is attributed once per word.
func (a *WordFrequencyAccumulator) AddResponse(resp Response) {
	a.responses++
	seen := make(map[string]struct{})
	for _, tok := range textanalysis.Tokenize(resp.Text) {
		w := a.words[tok]
		if w == nil {
			w = &wordAcc{examples: newExampleSet(MaxWordExamples)}
			a.words[tok] = w
		}
		w.count++
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		w.examples.add(resp.Pos, resp.Text)
	}
}

// Merge folds another partition's table into a
func (a *WordFrequencyAccumulator) Merge(o *WordFrequencyAccumulator) {
	a.responses += o.responses
	for tok, ow := range o.words {
		w := a.words[tok]
		if w == nil {
			w = &wordAcc{examples: newExampleSet(MaxWordExamples)}
			a.words[tok] = w
		}
		w.count += ow.count
		w.examples.merge(ow.examples)
	}
}

// Result returns the TopWords most frequent words
func (a *WordFrequencyAccumulator) Result() model.WordFrequencyTable {
	rows := make([]model.WordCount, 0, len(a.words))
	for tok, w := range a.words {
		rows = append(rows, model.WordCount{Word: tok, Count: w.count, Examples: w.examples.texts()})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Word < rows[j].Word
	})
	if len(rows) > TopWords {
		rows = rows[:TopWords]
	}
	return model.WordFrequencyTable{TotalResponses: a.responses, Words: rows}
}
