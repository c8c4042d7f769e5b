package analytics

import (
	"strings"

	"innsikt/internal/model"
)

// Response is one non-blank free-text answer.
type Response struct {
	Pos  Position
	Text string
}

// textResponses returns the record's text answers collected under ctx.
// Blocker fields belong to BLOCKER; every other text field is general feedback.
func textResponses(recordIdx int, r model.FeedbackRecord, ctx model.AnalysisContext) []Response {
	var out []Response
	for i, a := range r.Answers {
		text, ok := a.Text()
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		if answerContext(a) != ctx {
			continue
		}
		out = append(out, Response{Pos: Position{Record: recordIdx, Answer: i}, Text: text})
	}
	return out
}

func answerContext(a model.Answer) model.AnalysisContext {
	if a.FieldID == model.FieldBlocker {
		return model.ContextBlocker
	}
	return model.ContextGeneralFeedback
}

func civilDate(r model.FeedbackRecord, e *Engine) string {
	return r.SubmittedAt.In(e.loc).Format("2006-01-02")
}
