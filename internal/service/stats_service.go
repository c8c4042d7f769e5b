package service

import (
	"context"
	"fmt"
	"time"

	"innsikt/internal/analytics"
	"innsikt/internal/cache"
	"innsikt/internal/logger"
	"innsikt/internal/metrics"
	"innsikt/internal/model"
	"innsikt/internal/repository"
)

// Report names, used for cache keys and metrics labels
const (
	ReportRatings  = "ratings"
	ReportTasks    = "tasks"
	ReportThemes   = "themes"
	ReportBlockers = "blockers"
	ReportWords    = "words"
	ReportPriority = "priority"
	ReportOverview = "overview"
)

// partitionMinRecords is the smallest record set worth splitting across goroutines
const partitionMinRecords = 2000

// StatsService fetches records for a predicate and runs the analytics engine
type StatsService struct {
	feedbackRepo repository.FeedbackRepo
	themeRepo    repository.ThemeRepo
	statsCache   cache.StatsCache
	engine       *analytics.Engine
	partitions   int
}

// NewStatsService creates a new stats service. statsCache may be nil.
func NewStatsService(feedbackRepo repository.FeedbackRepo, themeRepo repository.ThemeRepo, statsCache cache.StatsCache, engine *analytics.Engine, partitions int) *StatsService {
	if partitions < 1 {
		partitions = 1
	}
	return &StatsService{
		feedbackRepo: feedbackRepo,
		themeRepo:    themeRepo,
		statsCache:   statsCache,
		engine:       engine,
		partitions:   partitions,
	}
}

// Ratings returns the numeric summary
func (s *StatsService) Ratings(ctx context.Context, pred model.AggregationPredicate) (model.RatingStats, error) {
	return runReport(ctx, s, ReportRatings, pred, func(_ context.Context, records []model.FeedbackRecord) (model.RatingStats, error) {
		return s.engine.RatingStats(records, pred), nil
	})
}

// TaskFunnel returns the top-tasks funnel
func (s *StatsService) TaskFunnel(ctx context.Context, pred model.AggregationPredicate) (model.TaskFunnelStats, error) {
	return runReport(ctx, s, ReportTasks, pred, func(_ context.Context, records []model.FeedbackRecord) (model.TaskFunnelStats, error) {
		return s.engine.TaskFunnel(records, pred), nil
	})
}

// Themes classifies text answers of the given context against the team's themes
func (s *StatsService) Themes(ctx context.Context, pred model.AggregationPredicate, actx model.AnalysisContext) (model.ThemeStats, error) {
	report := ReportThemes
	if actx == model.ContextBlocker {
		report = ReportBlockers
	}
	return runReport(ctx, s, report, pred, func(ctx context.Context, records []model.FeedbackRecord) (model.ThemeStats, error) {
		themes, err := s.themeRepo.ForTeam(ctx, pred.Team, actx)
		if err != nil {
			return model.ThemeStats{}, fmt.Errorf("load themes: %w", err)
		}
		if s.partitioned(records) {
			return s.engine.ThemesPartitioned(ctx, records, themes, actx, s.partitions)
		}
		return s.engine.Themes(records, themes, actx), nil
	})
}

// WordFrequency returns the surface-word table for text answers of the given context
func (s *StatsService) WordFrequency(ctx context.Context, pred model.AggregationPredicate, actx model.AnalysisContext) (model.WordFrequencyTable, error) {
	return runReport(ctx, s, ReportWords+":"+string(actx), pred, func(ctx context.Context, records []model.FeedbackRecord) (model.WordFrequencyTable, error) {
		if s.partitioned(records) {
			return s.engine.WordFrequencyPartitioned(ctx, records, actx, s.partitions)
		}
		return s.engine.WordFrequency(records, actx), nil
	})
}

// PriorityVotes returns the task-priority tally
func (s *StatsService) PriorityVotes(ctx context.Context, pred model.AggregationPredicate) (model.PriorityVoteStats, error) {
	return runReport(ctx, s, ReportPriority, pred, func(_ context.Context, records []model.FeedbackRecord) (model.PriorityVoteStats, error) {
		return s.engine.PriorityVotes(records), nil
	})
}

// Overview runs every report over one fetch
func (s *StatsService) Overview(ctx context.Context, pred model.AggregationPredicate) (model.Overview, error) {
	return runReport(ctx, s, ReportOverview, pred, func(ctx context.Context, records []model.FeedbackRecord) (model.Overview, error) {
		general, err := s.themeRepo.ForTeam(ctx, pred.Team, model.ContextGeneralFeedback)
		if err != nil {
			return model.Overview{}, fmt.Errorf("load themes: %w", err)
		}
		blocker, err := s.themeRepo.ForTeam(ctx, pred.Team, model.ContextBlocker)
		if err != nil {
			return model.Overview{}, fmt.Errorf("load blocker themes: %w", err)
		}
		return s.engine.Overview(ctx, records, pred, append(general, blocker...))
	})
}

func (s *StatsService) partitioned(records []model.FeedbackRecord) bool {
	return s.partitions > 1 && len(records) >= partitionMinRecords
}

// runReport is the shared cache, fetch, filter, compute and store path
func runReport[T any](ctx context.Context, s *StatsService, report string, pred model.AggregationPredicate, compute func(context.Context, []model.FeedbackRecord) (T, error)) (T, error) {
	log := logger.WithCtx(ctx)
	key := pred.Key()

	var out T
	if s.statsCache != nil {
		hit, err := s.statsCache.Get(ctx, pred.Team, report, key, &out)
		if err != nil && !cache.IsUnavailable(err) {
			log.Warn().Err(err).Str("report", report).Msg("stats cache lookup failed, computing")
		}
		if hit {
			metrics.RecordCacheHit(report)
			return out, nil
		}
		metrics.RecordCacheMiss(report)
	}

	start := time.Now()
	records, err := s.feedbackRepo.Fetch(ctx, pred)
	if err != nil {
		return out, fmt.Errorf("fetch feedback: %w", err)
	}
	records = filterRecords(records, pred)

	out, err = compute(ctx, records)
	if err != nil {
		return out, err
	}
	elapsed := time.Since(start)
	metrics.RecordReport(report, len(records), elapsed)
	log.Debug().
		Str("report", report).
		Str("team", pred.Team).
		Int("records", len(records)).
		Dur("duration", elapsed).
		Msg("report computed")

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, pred.Team, report, key, out); err != nil {
			log.Debug().Err(err).Str("report", report).Msg("failed to cache report")
		}
	}
	return out, nil
}

// filterRecords applies the predicate at the application edge, whatever the
// store already filtered.
func filterRecords(records []model.FeedbackRecord, pred model.AggregationPredicate) []model.FeedbackRecord {
	out := records[:0:0]
	for _, r := range records {
		if pred.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
