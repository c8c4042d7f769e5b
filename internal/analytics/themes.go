package analytics

import (
	"sort"

	"innsikt/internal/model"
	"innsikt/internal/textanalysis"
)

// MaxThemeExamples bounds the distinct example texts kept per theme
const MaxThemeExamples = 3

type compiledTheme struct {
	theme    model.TextTheme
	keywords [][]string
}

// ThemeClassifier matches stemmed response tokens against theme keywords.
// It is immutable once built and safe for concurrent use.
type ThemeClassifier struct {
	context model.AnalysisContext
	themes  []compiledTheme
}

// NewThemeClassifier keeps the themes whose context matches ctx and stems
// their keywords once. Themes without a context count as general feedback.
func NewThemeClassifier(themes []model.TextTheme, ctx model.AnalysisContext) *ThemeClassifier {
	c := &ThemeClassifier{context: ctx}
	for _, t := range themes {
		tc := t.AnalysisContext
		if tc == "" {
			tc = model.ContextGeneralFeedback
		}
		if tc != ctx {
			continue
		}
		c.themes = append(c.themes, compiledTheme{theme: t, keywords: textanalysis.KeywordStems(t.Keywords)})
	}
	return c
}

// Classify returns the indexes of every theme the text matches. A theme
// matches at most once per text regardless of how often its keywords occur.
func (c *ThemeClassifier) Classify(text string) []int {
	stems := textanalysis.StemSet(text)
	if len(stems) == 0 {
		return nil
	}
	var matched []int
	for i, t := range c.themes {
		for _, group := range t.keywords {
			if containsAll(stems, group) {
				matched = append(matched, i)
				break
			}
		}
	}
	return matched
}

func containsAll(set map[string]struct{}, stems []string) bool {
	for _, s := range stems {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

// ThemeAccumulator counts classified responses per theme.
type ThemeAccumulator struct {
	classifier   *ThemeClassifier
	responses    int
	counts       []int
	examples     []exampleSet
	unclassified int
	unclassEx    exampleSet
}

// NewAccumulator returns an empty accumulator bound to the classifier
func (c *ThemeClassifier) NewAccumulator() *ThemeAccumulator {
	ex := make([]exampleSet, len(c.themes))
	for i := range ex {
		ex[i] = newExampleSet(MaxThemeExamples)
	}
	return &ThemeAccumulator{
		classifier: c,
		counts:     make([]int, len(c.themes)),
		examples:   ex,
		unclassEx:  newExampleSet(MaxThemeExamples),
	}
}

// Add classifies every text answer of the record that belongs to the classifier's context
func (a *ThemeAccumulator) Add(idx int, r model.FeedbackRecord) {
	for _, resp := range textResponses(idx, r, a.classifier.context) {
		a.AddResponse(resp)
	}
}

// AddResponse classifies a single response
func (a *ThemeAccumulator) AddResponse(resp Response) {
	a.responses++
	matched := a.classifier.Classify(resp.Text)
	if len(matched) == 0 {
		a.unclassified++
		a.unclassEx.add(resp.Pos, resp.Text)
		return
	}
	for _, i := range matched {
		a.counts[i]++
		a.examples[i].add(resp.Pos, resp.Text)
	}
}

// Merge folds another partition's counts into a. Both must share a classifier.
func (a *ThemeAccumulator) Merge(o *ThemeAccumulator) {
	a.responses += o.responses
	for i := range a.counts {
		a.counts[i] += o.counts[i]
		a.examples[i].merge(o.examples[i])
	}
	a.unclassified += o.unclassified
	a.unclassEx.merge(o.unclassEx)
}

// Result lists themes with matches, most frequent first
func (a *ThemeAccumulator) Result() model.ThemeStats {
	type ranked struct {
		result   model.ThemeResult
		priority int
	}
	rows := make([]ranked, 0, len(a.counts)+1)
	for i, n := range a.counts {
		if n == 0 {
			continue
		}
		t := a.classifier.themes[i].theme
		rows = append(rows, ranked{
			result: model.ThemeResult{
				Kind:     model.ThemeKindTheme,
				ThemeID:  t.ID,
				Name:     t.Name,
				Color:    t.Color,
				Count:    n,
				Examples: a.examples[i].texts(),
			},
			priority: t.Priority,
		})
	}
	if a.unclassified > 0 {
		rows = append(rows, ranked{result: model.ThemeResult{
			Kind:     model.ThemeKindUnclassified,
			Name:     model.UnclassifiedName,
			Count:    a.unclassified,
			Examples: a.unclassEx.texts(),
		}})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].result, rows[j].result
		if ri.Count != rj.Count {
			return ri.Count > rj.Count
		}
		if ri.Kind != rj.Kind {
			return ri.Kind == model.ThemeKindTheme
		}
		if rows[i].priority != rows[j].priority {
			return rows[i].priority > rows[j].priority
		}
		if ri.Name != rj.Name {
			return ri.Name < rj.Name
		}
		return ri.ThemeID < rj.ThemeID
	})

	out := model.ThemeStats{
		AnalysisContext: a.classifier.context,
		TotalResponses:  a.responses,
		Masked:          model.IsMasked(a.responses),
		Themes:          make([]model.ThemeResult, len(rows)),
	}
	for i, r := range rows {
		out.Themes[i] = r.result
	}
	return out
}
