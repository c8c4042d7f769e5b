package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsikt/internal/model"
	"innsikt/internal/query"
)

func submission() *model.FeedbackSubmission {
	return &model.FeedbackSubmission{
		Team:       "flex",
		App:        "dagpenger",
		SurveyID:   "s1",
		SurveyType: "RATING",
		Context:    model.SubmittedContext{DeviceType: "mobile", Pathname: "/soknad", Tags: map[string]string{"rolle": "bruker"}},
		Answers: []model.SubmittedAnswer{
			{FieldID: "rating", FieldType: "RATING", Value: json.RawMessage(`{"score":4,"variant":"emoji","scale":5}`)},
			{FieldID: "feedback", FieldType: "TEXT", Value: json.RawMessage(`{"text":"Bra"}`)},
		},
	}
}

func TestFeedbackService_Submit(t *testing.T) {
	repo := &memFeedbackRepo{}
	mr, statsCache := newTestCache(t)
	b := &recordingBroadcaster{}
	svc := NewFeedbackService(repo, statsCache)
	svc.SetBroadcaster(b)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	rec, err := svc.Submit(context.Background(), submission())
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "dagpenger", rec.AppName())
	assert.Equal(t, model.DeviceMobile, rec.Context.DeviceType)
	assert.Equal(t, model.RatingValue{Score: 4, Variant: model.VariantEmoji, Scale: 5}, rec.Answers[0].Value)
	require.Len(t, repo.records, 1)

	gen, err := mr.Get("stats:flex:gen")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	require.Len(t, b.events, 1)
	assert.Equal(t, "flex", b.events[0].team)
	assert.Equal(t, EventFeedbackReceived, b.events[0].msgType)
	assert.Equal(t, rec.ID, b.events[0].payload.(FeedbackReceived).ID)
}

func TestFeedbackService_SubmitRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.FeedbackSubmission)
	}{
		{"missing team", func(s *model.FeedbackSubmission) { s.Team = "" }},
		{"unknown survey type", func(s *model.FeedbackSubmission) { s.SurveyType = "POLL" }},
		{"no answers", func(s *model.FeedbackSubmission) { s.Answers = nil }},
		{"rating out of range", func(s *model.FeedbackSubmission) {
			s.Answers[0].Value = json.RawMessage(`{"score":7,"variant":"emoji"}`)
		}},
		{"value does not decode", func(s *model.FeedbackSubmission) {
			s.Answers[1].Value = json.RawMessage(`{"text":42}`)
		}},
		{"invalid date", func(s *model.FeedbackSubmission) {
			s.Answers[1] = model.SubmittedAnswer{FieldID: "d", FieldType: "DATE", Value: json.RawMessage(`{"isoDate":"01.03.2026"}`)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memFeedbackRepo{}
			svc := NewFeedbackService(repo, nil)
			req := submission()
			tt.mutate(req)

			_, err := svc.Submit(context.Background(), req)
			require.Error(t, err)
			assert.True(t, query.IsValidation(err), "got %v", err)
			assert.Empty(t, repo.records)
		})
	}
}
