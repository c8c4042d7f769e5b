package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"innsikt/internal/cache"
	"innsikt/internal/model"
	"innsikt/internal/repository"
)

type memFeedbackRepo struct {
	mu      sync.Mutex
	records []model.FeedbackRecord
	fetches int
	err     error
}

func (r *memFeedbackRepo) Create(_ context.Context, rec model.FeedbackRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, rec)
	return nil
}

// Fetch only filters by team, leaving the rest to the edge filter
func (r *memFeedbackRepo) Fetch(_ context.Context, pred model.AggregationPredicate) ([]model.FeedbackRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetches++
	if r.err != nil {
		return nil, r.err
	}
	var out []model.FeedbackRecord
	for _, rec := range r.records {
		if rec.Team == pred.Team {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memThemeRepo struct {
	mu     sync.Mutex
	themes map[string]*model.TextTheme
}

func newMemThemeRepo(themes ...model.TextTheme) *memThemeRepo {
	r := &memThemeRepo{themes: map[string]*model.TextTheme{}}
	for i := range themes {
		t := themes[i]
		r.themes[t.ID] = &t
	}
	return r
}

func (r *memThemeRepo) Create(_ context.Context, t *model.TextTheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.themes[t.ID] = &cp
	return nil
}

func (r *memThemeRepo) GetByID(_ context.Context, id string) (*model.TextTheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.themes[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memThemeRepo) ListByTeam(_ context.Context, team string) ([]*model.TextTheme, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.TextTheme
	for _, t := range r.themes {
		if t.Team == team {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memThemeRepo) ForTeam(ctx context.Context, team string, actx model.AnalysisContext) ([]model.TextTheme, error) {
	all, _ := r.ListByTeam(ctx, team)
	var out []model.TextTheme
	for _, t := range all {
		if t.AnalysisContext == actx {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memThemeRepo) Update(_ context.Context, t *model.TextTheme) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.themes[t.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *t
	r.themes[t.ID] = &cp
	return nil
}

func (r *memThemeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.themes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.themes, id)
	return nil
}

type memSurveyRepo struct {
	surveys map[string]*model.Survey
}

func (r *memSurveyRepo) Create(_ context.Context, s *model.Survey) error {
	if r.surveys == nil {
		r.surveys = map[string]*model.Survey{}
	}
	cp := *s
	r.surveys[s.ID] = &cp
	return nil
}

func (r *memSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *memSurveyRepo) ListByTeam(_ context.Context, team string) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, s := range r.surveys {
		if s.Team == team {
			out = append(out, s)
		}
	}
	return out, nil
}

type event struct {
	team, msgType string
	payload       interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []event
}

func (b *recordingBroadcaster) BroadcastToTeam(team, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event{team, msgType, payload})
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, cache.StatsCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewStatsCache(client, time.Minute)
}
