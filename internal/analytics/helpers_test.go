package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"innsikt/internal/model"
)

var oslo = mustLoad("Europe/Oslo")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, oslo)

func newTestEngine() *Engine {
	return NewEngine(oslo, WithClock(func() time.Time { return fixedNow }))
}

type recordOpt func(*recordSpec)

type recordSpec struct {
	app        *string
	at         time.Time
	surveyType model.SurveyType
	device     model.DeviceType
	pathname   string
	tags       map[string]string
	answers    []model.Answer
}

func withApp(app string) recordOpt { return func(s *recordSpec) { s.app = &app } }
func at(t time.Time) recordOpt     { return func(s *recordSpec) { s.at = t } }
func survey(t model.SurveyType) recordOpt {
	return func(s *recordSpec) { s.surveyType = t }
}
func device(d model.DeviceType) recordOpt { return func(s *recordSpec) { s.device = d } }
func path(p string) recordOpt             { return func(s *recordSpec) { s.pathname = p } }
func answers(a ...model.Answer) recordOpt {
	return func(s *recordSpec) { s.answers = append(s.answers, a...) }
}

var recordSeq int

func record(t *testing.T, opts ...recordOpt) model.FeedbackRecord {
	t.Helper()
	rs := recordSpec{
		at:         fixedNow.Add(-time.Hour),
		surveyType: model.SurveyTypeRating,
		device:     model.DeviceDesktop,
	}
	for _, opt := range opts {
		opt(&rs)
	}
	recordSeq++
	r, err := model.NewFeedbackRecord(
		fmt.Sprintf("rec-%d", recordSeq), "flex", rs.app, rs.at, "survey-1", rs.surveyType,
		model.SubmissionContext{DeviceType: rs.device, Pathname: rs.pathname, Tags: rs.tags},
		rs.answers,
	)
	require.NoError(t, err)
	return r
}

func rating(score int) model.Answer {
	return model.Answer{
		FieldID:   "rating",
		FieldType: model.FieldTypeRating,
		Question:  model.Question{Label: "Hvordan var opplevelsen?"},
		Value:     model.RatingValue{Score: score, Variant: model.VariantEmoji, Scale: 5},
	}
}

func text(fieldID, s string) model.Answer {
	return model.Answer{
		FieldID:   fieldID,
		FieldType: model.FieldTypeText,
		Question:  model.Question{Label: fieldID},
		Value:     model.TextValue{Text: s},
	}
}

func feedback(s string) model.Answer { return text("feedback", s) }
func blocker(s string) model.Answer  { return text(model.FieldBlocker, s) }

var taskOptions = []model.ChoiceOption{
	{ID: "sok", Label: "Søke om dagpenger"},
	{ID: "status", Label: "Se status i saken"},
	{ID: "melde", Label: "Sende meldekort"},
}

func task(optionID string) model.Answer {
	return model.Answer{
		FieldID:   model.FieldTask,
		FieldType: model.FieldTypeSingleChoice,
		Question:  model.Question{Label: "Hva kom du for å gjøre?", Options: taskOptions},
		Value:     model.SingleChoiceValue{OptionID: optionID},
	}
}

func outcome(id string) model.Answer {
	return model.Answer{
		FieldID:   model.FieldSuccess,
		FieldType: model.FieldTypeSingleChoice,
		Question: model.Question{Label: "Fikk du gjort det?", Options: []model.ChoiceOption{
			{ID: OutcomeYes, Label: "Ja"}, {ID: OutcomePartial, Label: "Delvis"}, {ID: OutcomeNo, Label: "Nei"},
		}},
		Value: model.SingleChoiceValue{OptionID: id},
	}
}

func priority(options []model.ChoiceOption, ids ...string) model.Answer {
	return model.Answer{
		FieldID:   model.FieldPriority,
		FieldType: model.FieldTypeMultiChoice,
		Question:  model.Question{Label: "Hva er viktigst for deg?", Options: options},
		Value:     model.MultiChoiceValue{OptionIDs: ids},
	}
}
