package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"

	"innsikt/internal/model"
)

var errUnknownFieldType = errors.New("unknown field type")

// feedbackDoc is the stored shape of a feedback record. Answer values and
// context tags are kept loosely typed because older submissions wrote numbers
// as strings and tags as mixed scalars.
type feedbackDoc struct {
	ID          string      `bson:"_id"`
	Team        string      `bson:"team"`
	App         *string     `bson:"app,omitempty"`
	SubmittedAt time.Time   `bson:"submittedAt"`
	SurveyID    string      `bson:"surveyId"`
	SurveyType  string      `bson:"surveyType"`
	Context     contextDoc  `bson:"context"`
	Answers     []answerDoc `bson:"answers"`
}

type contextDoc struct {
	DeviceType string `bson:"deviceType,omitempty"`
	Pathname   string `bson:"pathname,omitempty"`
	Tags       bson.M `bson:"tags,omitempty"`
}

type answerDoc struct {
	FieldID   string         `bson:"fieldId"`
	FieldType string         `bson:"fieldType"`
	Question  model.Question `bson:"question"`
	Value     bson.M         `bson:"value"`
}

func toDoc(r model.FeedbackRecord) feedbackDoc {
	doc := feedbackDoc{
		ID:          r.ID,
		Team:        r.Team,
		App:         r.App,
		SubmittedAt: r.SubmittedAt.UTC(),
		SurveyID:    r.SurveyID,
		SurveyType:  string(r.SurveyType),
		Context: contextDoc{
			DeviceType: string(r.Context.DeviceType),
			Pathname:   r.Context.Pathname,
		},
		Answers: make([]answerDoc, 0, len(r.Answers)),
	}
	if len(r.Context.Tags) > 0 {
		doc.Context.Tags = bson.M{}
		for k, v := range r.Context.Tags {
			doc.Context.Tags[k] = v
		}
	}
	for _, a := range r.Answers {
		doc.Answers = append(doc.Answers, answerDoc{
			FieldID:   a.FieldID,
			FieldType: string(a.FieldType),
			Question:  a.Question,
			Value:     valueToBSON(a.Value),
		})
	}
	return doc
}

func valueToBSON(v model.AnswerValue) bson.M {
	switch v := v.(type) {
	case model.RatingValue:
		return bson.M{"score": v.Score, "variant": string(v.Variant), "scale": v.Scale}
	case model.TextValue:
		return bson.M{"text": v.Text}
	case model.SingleChoiceValue:
		return bson.M{"optionId": v.OptionID}
	case model.MultiChoiceValue:
		return bson.M{"optionIds": v.OptionIDs}
	case model.DateValue:
		return bson.M{"isoDate": v.ISODate}
	}
	return bson.M{}
}

// fromDoc parses a stored document into a validated record
func fromDoc(doc feedbackDoc) (model.FeedbackRecord, error) {
	tags := make(map[string]string, len(doc.Context.Tags))
	for k, v := range doc.Context.Tags {
		s, err := cast.ToStringE(v)
		if err != nil {
			return model.FeedbackRecord{}, fmt.Errorf("tag %q: %w", k, err)
		}
		tags[k] = s
	}

	answers := make([]model.Answer, 0, len(doc.Answers))
	for i, a := range doc.Answers {
		ft := model.FieldType(a.FieldType)
		v, err := valueFromBSON(ft, a.Value)
		if err != nil {
			return model.FeedbackRecord{}, fmt.Errorf("answer %d (%s): %w", i, a.FieldID, err)
		}
		ans, err := model.NewAnswer(a.FieldID, ft, a.Question, v)
		if err != nil {
			return model.FeedbackRecord{}, fmt.Errorf("answer %d (%s): %w", i, a.FieldID, err)
		}
		answers = append(answers, ans)
	}

	ctx := model.SubmissionContext{
		DeviceType: model.ParseDeviceType(doc.Context.DeviceType),
		Pathname:   doc.Context.Pathname,
		Tags:       tags,
	}
	return model.NewFeedbackRecord(doc.ID, doc.Team, doc.App, doc.SubmittedAt,
		doc.SurveyID, model.SurveyType(doc.SurveyType), ctx, answers)
}

func valueFromBSON(ft model.FieldType, m bson.M) (model.AnswerValue, error) {
	switch ft {
	case model.FieldTypeRating:
		score, err := cast.ToIntE(m["score"])
		if err != nil {
			return nil, fmt.Errorf("rating score: %w", err)
		}
		variant := cast.ToString(m["variant"])
		if variant == "" {
			variant = string(model.VariantEmoji)
		}
		return model.RatingValue{Score: score, Variant: model.RatingVariant(variant), Scale: cast.ToInt(m["scale"])}, nil
	case model.FieldTypeText:
		return model.TextValue{Text: cast.ToString(m["text"])}, nil
	case model.FieldTypeSingleChoice:
		return model.SingleChoiceValue{OptionID: cast.ToString(m["optionId"])}, nil
	case model.FieldTypeMultiChoice:
		raw := m["optionIds"]
		if a, ok := raw.(bson.A); ok {
			raw = []interface{}(a)
		}
		ids, err := cast.ToStringSliceE(raw)
		if err != nil {
			return nil, fmt.Errorf("option ids: %w", err)
		}
		return model.MultiChoiceValue{OptionIDs: ids}, nil
	case model.FieldTypeDate:
		return model.DateValue{ISODate: cast.ToString(m["isoDate"])}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownFieldType, ft)
}

// predicateFilter pushes every record-level constraint down to MongoDB.
// Task is a funnel drill-down and stays with the analyzer.
func predicateFilter(p model.AggregationPredicate) bson.M {
	f := bson.M{"team": p.Team}
	if p.App != "" {
		f["app"] = p.App
	}
	if p.HasRange() {
		rng := bson.M{}
		if p.From != nil {
			rng["$gte"] = p.From.UTC()
		}
		if p.To != nil {
			rng["$lt"] = p.To.UTC()
		}
		f["submittedAt"] = rng
	}
	if p.SurveyID != "" {
		f["surveyId"] = p.SurveyID
	}
	if p.DeviceType != "" {
		f["context.deviceType"] = string(p.DeviceType)
	}
	for _, s := range p.Segments {
		// keys that would change the path are left to the edge filter
		if strings.ContainsAny(s.Key, ".$") {
			continue
		}
		f["context.tags."+s.Key] = s.Value
	}
	return f
}
