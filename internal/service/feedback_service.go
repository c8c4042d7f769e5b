package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"innsikt/internal/cache"
	"innsikt/internal/logger"
	"innsikt/internal/metrics"
	"innsikt/internal/model"
	"innsikt/internal/query"
	"innsikt/internal/repository"
)

// FeedbackReceived is the dashboard event payload for a new submission
type FeedbackReceived struct {
	ID          string           `json:"id"`
	SurveyID    string           `json:"surveyId"`
	SurveyType  model.SurveyType `json:"surveyType"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// FeedbackService ingests survey submissions
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepo
	statsCache   cache.StatsCache
	broadcaster  Broadcaster
	now          func() time.Time
}

// NewFeedbackService creates a new feedback service. statsCache may be nil.
func NewFeedbackService(feedbackRepo repository.FeedbackRepo, statsCache cache.StatsCache) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		statsCache:   statsCache,
		broadcaster:  noopBroadcaster{},
		now:          time.Now,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *FeedbackService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and stores a submission, then notifies the team's dashboards
func (s *FeedbackService) Submit(ctx context.Context, req *model.FeedbackSubmission) (*model.FeedbackRecord, error) {
	if err := query.Validate(req); err != nil {
		return nil, err
	}

	answers := make([]model.Answer, 0, len(req.Answers))
	for i, a := range req.Answers {
		ans, err := a.ToAnswer()
		if err != nil {
			return nil, invalid(fmt.Errorf("answer %d (%s): %w", i, a.FieldID, err))
		}
		answers = append(answers, ans)
	}

	var app *string
	if a := strings.TrimSpace(req.App); a != "" {
		app = &a
	}
	submissionCtx := model.SubmissionContext{
		DeviceType: model.ParseDeviceType(req.Context.DeviceType),
		Pathname:   req.Context.Pathname,
		Tags:       req.Context.Tags,
	}

	record, err := model.NewFeedbackRecord(uuid.NewString(), strings.TrimSpace(req.Team), app, s.now().UTC(),
		req.SurveyID, model.SurveyType(req.SurveyType), submissionCtx, answers)
	if err != nil {
		return nil, invalid(err)
	}

	if err := s.feedbackRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	metrics.RecordFeedbackReceived(string(record.SurveyType))

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, record.Team); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("team", record.Team).Msg("failed to invalidate stats cache")
		}
	}

	s.broadcaster.BroadcastToTeam(record.Team, EventFeedbackReceived, FeedbackReceived{
		ID:          record.ID,
		SurveyID:    record.SurveyID,
		SurveyType:  record.SurveyType,
		SubmittedAt: record.SubmittedAt,
	})

	return &record, nil
}
