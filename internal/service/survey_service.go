package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"innsikt/internal/model"
	"innsikt/internal/query"
	"innsikt/internal/repository"
)

// SurveyService handles survey catalog operations
type SurveyService struct {
	surveyRepo repository.SurveyRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo) *SurveyService {
	return &SurveyService{
		surveyRepo: surveyRepo,
	}
}

// Create registers a survey for the team
func (s *SurveyService) Create(ctx context.Context, team string, req *model.SurveyRequest) (*model.Survey, error) {
	if err := query.Validate(req); err != nil {
		return nil, err
	}
	survey := &model.Survey{
		ID:    uuid.NewString(),
		Team:  team,
		Type:  model.SurveyType(req.Type),
		Title: strings.TrimSpace(req.Title),
		App:   strings.TrimSpace(req.App),
	}
	if err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// GetByID retrieves a survey of the team
func (s *SurveyService) GetByID(ctx context.Context, team, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil || survey.Team != team {
		return nil, ErrNotFound
	}
	return survey, nil
}

// ListByTeam retrieves all surveys of a team
func (s *SurveyService) ListByTeam(ctx context.Context, team string) ([]*model.Survey, error) {
	surveys, err := s.surveyRepo.ListByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if surveys == nil {
		surveys = []*model.Survey{}
	}
	return surveys, nil
}
