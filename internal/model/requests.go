package model

import (
	"encoding/json"
	"fmt"
)

// FeedbackSubmission is the public request body for submitting feedback
type FeedbackSubmission struct {
	Team       string            `json:"team" validate:"required,max=128"`
	App        string            `json:"app,omitempty" validate:"max=128"`
	SurveyID   string            `json:"surveyId" validate:"required,max=128"`
	SurveyType string            `json:"surveyType" validate:"required,oneof=RATING TOP_TASKS DISCOVERY TASK_PRIORITY CUSTOM"`
	Context    SubmittedContext  `json:"context"`
	Answers    []SubmittedAnswer `json:"answers" validate:"required,min=1,max=50,dive"`
}

type SubmittedContext struct {
	DeviceType string            `json:"deviceType,omitempty"`
	Pathname   string            `json:"pathname,omitempty" validate:"max=512"`
	Tags       map[string]string `json:"tags,omitempty" validate:"max=20"`
}

// SubmittedAnswer carries the value as raw JSON until its field type is known
type SubmittedAnswer struct {
	FieldID   string          `json:"fieldId" validate:"required,max=128"`
	FieldType string          `json:"fieldType" validate:"required,oneof=RATING TEXT SINGLE_CHOICE MULTI_CHOICE DATE"`
	Question  Question        `json:"question"`
	Value     json.RawMessage `json:"value" validate:"required"`
}

// ToAnswer decodes the value for the declared field type and validates it
func (s SubmittedAnswer) ToAnswer() (Answer, error) {
	ft := FieldType(s.FieldType)
	var (
		v   AnswerValue
		err error
	)
	switch ft {
	case FieldTypeRating:
		var rv RatingValue
		err = json.Unmarshal(s.Value, &rv)
		v = rv
	case FieldTypeText:
		var tv TextValue
		err = json.Unmarshal(s.Value, &tv)
		v = tv
	case FieldTypeSingleChoice:
		var sv SingleChoiceValue
		err = json.Unmarshal(s.Value, &sv)
		v = sv
	case FieldTypeMultiChoice:
		var mv MultiChoiceValue
		err = json.Unmarshal(s.Value, &mv)
		v = mv
	case FieldTypeDate:
		var dv DateValue
		err = json.Unmarshal(s.Value, &dv)
		v = dv
	default:
		return Answer{}, fmt.Errorf("%w: field type %q", ErrValueMismatch, s.FieldType)
	}
	if err != nil {
		return Answer{}, fmt.Errorf("%w: %v", ErrValueMismatch, err)
	}
	return NewAnswer(s.FieldID, ft, s.Question, v)
}

// ThemeRequest creates or replaces a text theme
type ThemeRequest struct {
	Name            string   `json:"name" validate:"required,max=80"`
	Keywords        []string `json:"keywords" validate:"max=100,dive,max=64"`
	Color           string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Priority        int      `json:"priority"`
	AnalysisContext string   `json:"analysisContext,omitempty" validate:"omitempty,oneof=GENERAL_FEEDBACK BLOCKER"`
}

// SurveyRequest registers a survey in the catalog
type SurveyRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Type  string `json:"type" validate:"required,oneof=RATING TOP_TASKS DISCOVERY TASK_PRIORITY CUSTOM"`
	App   string `json:"app,omitempty" validate:"max=128"`
}
