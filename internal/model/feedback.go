package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SurveyType decides which analyzer applies to a record
type SurveyType string

const (
	SurveyTypeRating       SurveyType = "RATING"
	SurveyTypeTopTasks     SurveyType = "TOP_TASKS"
	SurveyTypeDiscovery    SurveyType = "DISCOVERY"
	SurveyTypeTaskPriority SurveyType = "TASK_PRIORITY"
	SurveyTypeCustom       SurveyType = "CUSTOM"
)

// Valid reports whether t is a known survey type
func (t SurveyType) Valid() bool {
	switch t {
	case SurveyTypeRating, SurveyTypeTopTasks, SurveyTypeDiscovery, SurveyTypeTaskPriority, SurveyTypeCustom:
		return true
	}
	return false
}

// DeviceType is the client form factor reported at submission
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
	DeviceUnknown DeviceType = "unknown"
)

// ParseDeviceType maps free-form input to a DeviceType, falling back to DeviceUnknown
func ParseDeviceType(s string) DeviceType {
	switch DeviceType(strings.ToLower(strings.TrimSpace(s))) {
	case DeviceMobile:
		return DeviceMobile
	case DeviceTablet:
		return DeviceTablet
	case DeviceDesktop:
		return DeviceDesktop
	}
	return DeviceUnknown
}

var (
	ErrMissingTeam     = errors.New("feedback record requires a team")
	ErrInvalidSurvey   = errors.New("feedback record has an unknown survey type")
	ErrMissingSubmitAt = errors.New("feedback record requires a submission time")
)

// SubmissionContext is where and on what the feedback was given
type SubmissionContext struct {
	DeviceType DeviceType        `json:"deviceType"`
	Pathname   string            `json:"pathname,omitempty"`
	Tags       map[string]string `json:"tags,omitempty"` // segment tags
}

// FeedbackRecord is one survey submission. Construct with NewFeedbackRecord;
// the analytics engine only reads it.
type FeedbackRecord struct {
	ID          string            `json:"id"`
	Team        string            `json:"team"`
	App         *string           `json:"app,omitempty"`
	SubmittedAt time.Time         `json:"submittedAt"`
	SurveyID    string            `json:"surveyId"`
	SurveyType  SurveyType        `json:"surveyType"`
	Context     SubmissionContext `json:"context"`
	Answers     []Answer          `json:"answers"`
}

// NewFeedbackRecord validates and copies the inputs into a record
func NewFeedbackRecord(id, team string, app *string, submittedAt time.Time, surveyID string, surveyType SurveyType, ctx SubmissionContext, answers []Answer) (FeedbackRecord, error) {
	if strings.TrimSpace(team) == "" {
		return FeedbackRecord{}, ErrMissingTeam
	}
	if !surveyType.Valid() {
		return FeedbackRecord{}, fmt.Errorf("%w: %q", ErrInvalidSurvey, surveyType)
	}
	if submittedAt.IsZero() {
		return FeedbackRecord{}, ErrMissingSubmitAt
	}
	for i, a := range answers {
		if err := a.Validate(); err != nil {
			return FeedbackRecord{}, fmt.Errorf("answer %d (%s): %w", i, a.FieldID, err)
		}
	}

	tags := make(map[string]string, len(ctx.Tags))
	for k, v := range ctx.Tags {
		tags[k] = v
	}
	if ctx.DeviceType == "" {
		ctx.DeviceType = DeviceUnknown
	}
	ctx.Tags = tags

	var appCopy *string
	if app != nil && strings.TrimSpace(*app) != "" {
		a := *app
		appCopy = &a
	}

	return FeedbackRecord{
		ID:          id,
		Team:        team,
		App:         appCopy,
		SubmittedAt: submittedAt,
		SurveyID:    surveyID,
		SurveyType:  surveyType,
		Context:     ctx,
		Answers:     append([]Answer(nil), answers...),
	}, nil
}

// AppName returns the app or "" when the record has none
func (r FeedbackRecord) AppName() string {
	if r.App == nil {
		return ""
	}
	return *r.App
}

// AnswerByField returns the first answer with the given field id
func (r FeedbackRecord) AnswerByField(fieldID string) (Answer, bool) {
	for _, a := range r.Answers {
		if a.FieldID == fieldID {
			return a, true
		}
	}
	return Answer{}, false
}

// FirstRating returns the first rating answer of the record
func (r FeedbackRecord) FirstRating() (RatingValue, bool) {
	for _, a := range r.Answers {
		if v, ok := a.Value.(RatingValue); ok {
			return v, true
		}
	}
	return RatingValue{}, false
}

// HasText reports whether any text answer is non-blank
func (r FeedbackRecord) HasText() bool {
	for _, a := range r.Answers {
		if v, ok := a.Value.(TextValue); ok && strings.TrimSpace(v.Text) != "" {
			return true
		}
	}
	return false
}
