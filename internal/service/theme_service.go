package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"innsikt/internal/cache"
	"innsikt/internal/logger"
	"innsikt/internal/model"
	"innsikt/internal/query"
	"innsikt/internal/repository"
)

// ThemeService handles text theme CRUD operations
type ThemeService struct {
	themeRepo   repository.ThemeRepo
	statsCache  cache.StatsCache
	broadcaster Broadcaster
}

// NewThemeService creates a new theme service. statsCache may be nil.
func NewThemeService(themeRepo repository.ThemeRepo, statsCache cache.StatsCache) *ThemeService {
	return &ThemeService{
		themeRepo:   themeRepo,
		statsCache:  statsCache,
		broadcaster: noopBroadcaster{},
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *ThemeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// List returns every theme of the team
func (s *ThemeService) List(ctx context.Context, team string) ([]*model.TextTheme, error) {
	themes, err := s.themeRepo.ListByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	if themes == nil {
		themes = []*model.TextTheme{}
	}
	return themes, nil
}

// Create adds a theme to the team
func (s *ThemeService) Create(ctx context.Context, team string, req *model.ThemeRequest) (*model.TextTheme, error) {
	if err := query.Validate(req); err != nil {
		return nil, err
	}
	theme := &model.TextTheme{
		ID:   uuid.NewString(),
		Team: team,
	}
	applyThemeRequest(theme, req)

	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, err
	}
	s.changed(ctx, team)
	return theme, nil
}

// Update replaces a theme's editable fields
func (s *ThemeService) Update(ctx context.Context, team, id string, req *model.ThemeRequest) (*model.TextTheme, error) {
	if err := query.Validate(req); err != nil {
		return nil, err
	}
	theme, err := s.owned(ctx, team, id)
	if err != nil {
		return nil, err
	}
	applyThemeRequest(theme, req)

	if err := s.themeRepo.Update(ctx, theme); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.changed(ctx, team)
	return theme, nil
}

// Delete removes a theme from the team
func (s *ThemeService) Delete(ctx context.Context, team, id string) error {
	if _, err := s.owned(ctx, team, id); err != nil {
		return err
	}
	if err := s.themeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.changed(ctx, team)
	return nil
}

// owned loads a theme and hides themes of other teams
func (s *ThemeService) owned(ctx context.Context, team, id string) (*model.TextTheme, error) {
	theme, err := s.themeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if theme == nil || theme.Team != team {
		return nil, ErrNotFound
	}
	return theme, nil
}

func (s *ThemeService) changed(ctx context.Context, team string) {
	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx, team); err != nil {
			logger.WithCtx(ctx).Warn().Err(err).Str("team", team).Msg("failed to invalidate stats cache")
		}
	}
	s.broadcaster.BroadcastToTeam(team, EventThemesChanged, map[string]string{"team": team})
}

func applyThemeRequest(theme *model.TextTheme, req *model.ThemeRequest) {
	theme.Name = strings.TrimSpace(req.Name)
	theme.Keywords = CleanKeywords(req.Keywords)
	theme.Color = req.Color
	theme.Priority = req.Priority
	theme.AnalysisContext = model.AnalysisContext(req.AnalysisContext)
	if theme.AnalysisContext == "" {
		theme.AnalysisContext = model.ContextGeneralFeedback
	}
}

// CleanKeywords trims and lowercases keywords, dropping blanks and duplicates
func CleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
