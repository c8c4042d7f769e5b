// Package analytics turns a filtered set of feedback records into rating,
// task-funnel, theme, word-frequency and priority-vote reports.
//
// Every report is built by an accumulator with Add, Merge and Result. The
// engine holds no mutable state, so reports over the same record slice can
// run concurrently, and a record slice can be split into partitions whose
// accumulators merge to the same result as a sequential pass.
package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"innsikt/internal/model"
)

// Engine computes reports. Civil dates are taken in its location.
type Engine struct {
	loc *time.Location
	now func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the clock used for the default date window
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine reporting civil dates in loc
func NewEngine(loc *time.Location, opts ...Option) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	e := &Engine{loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Location returns the engine's civil timezone
func (e *Engine) Location() *time.Location {
	return e.loc
}

type accumulator[T any] interface {
	Add(idx int, r model.FeedbackRecord)
	Merge(o T)
}

func fold[T accumulator[T]](records []model.FeedbackRecord, acc T) T {
	for i, r := range records {
		acc.Add(i, r)
	}
	return acc
}

// foldPartitioned splits records into contiguous partitions, folds each in
// its own goroutine and merges the partials in partition order. Record
// indexes stay global so example ordering matches a sequential fold.
func foldPartitioned[T accumulator[T]](ctx context.Context, records []model.FeedbackRecord, parts int, newAcc func() T) (T, error) {
	if parts < 1 {
		parts = 1
	}
	if parts > len(records) && len(records) > 0 {
		parts = len(records)
	}
	size := (len(records) + parts - 1) / parts

	partials := make([]T, parts)
	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < parts; p++ {
		g.Go(func() error {
			acc := newAcc()
			start, end := p*size, min((p+1)*size, len(records))
			for i := start; i < end; i++ {
				acc.Add(i, records[i])
			}
			partials[p] = acc
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		var zero T
		return zero, err
	}

	out := partials[0]
	for _, acc := range partials[1:] {
		out.Merge(acc)
	}
	return out, nil
}

// RatingStats computes the numeric summary
func (e *Engine) RatingStats(records []model.FeedbackRecord, pred model.AggregationPredicate) model.RatingStats {
	return fold(records, e.NewRatingAccumulator(pred)).Result()
}

// TaskFunnel computes the top-tasks funnel
func (e *Engine) TaskFunnel(records []model.FeedbackRecord, pred model.AggregationPredicate) model.TaskFunnelStats {
	return fold(records, e.NewTaskFunnelAccumulator(pred)).Result()
}

// Themes classifies the text answers collected under ctx
func (e *Engine) Themes(records []model.FeedbackRecord, themes []model.TextTheme, ctx model.AnalysisContext) model.ThemeStats {
	return fold(records, NewThemeClassifier(themes, ctx).NewAccumulator()).Result()
}

// WordFrequency builds the surface-word table for text answers under ctx
func (e *Engine) WordFrequency(records []model.FeedbackRecord, ctx model.AnalysisContext) model.WordFrequencyTable {
	return fold(records, NewWordFrequencyAccumulator(ctx)).Result()
}

// PriorityVotes tallies task-priority votes
func (e *Engine) PriorityVotes(records []model.FeedbackRecord) model.PriorityVoteStats {
	return fold(records, NewPriorityAccumulator()).Result()
}

// ThemesPartitioned is Themes computed over parts concurrent partitions
func (e *Engine) ThemesPartitioned(ctx context.Context, records []model.FeedbackRecord, themes []model.TextTheme, actx model.AnalysisContext, parts int) (model.ThemeStats, error) {
	classifier := NewThemeClassifier(themes, actx)
	acc, err := foldPartitioned(ctx, records, parts, classifier.NewAccumulator)
	if err != nil {
		return model.ThemeStats{}, err
	}
	return acc.Result(), nil
}

// WordFrequencyPartitioned is WordFrequency computed over parts concurrent partitions
func (e *Engine) WordFrequencyPartitioned(ctx context.Context, records []model.FeedbackRecord, actx model.AnalysisContext, parts int) (model.WordFrequencyTable, error) {
	acc, err := foldPartitioned(ctx, records, parts, func() *WordFrequencyAccumulator {
		return NewWordFrequencyAccumulator(actx)
	})
	if err != nil {
		return model.WordFrequencyTable{}, err
	}
	return acc.Result(), nil
}

// Overview runs every report over the same records concurrently
func (e *Engine) Overview(ctx context.Context, records []model.FeedbackRecord, pred model.AggregationPredicate, themes []model.TextTheme) (model.Overview, error) {
	var out model.Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.Ratings = e.RatingStats(records, pred)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Tasks = e.TaskFunnel(records, pred)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Themes = e.Themes(records, themes, model.ContextGeneralFeedback)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Blockers = e.Themes(records, themes, model.ContextBlocker)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Words = e.WordFrequency(records, model.ContextGeneralFeedback)
		return gctx.Err()
	})
	g.Go(func() error {
		out.Priority = e.PriorityVotes(records)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		return model.Overview{}, err
	}
	return out, nil
}
