package analytics

import (
	"sort"
	"strings"
	"time"

	"innsikt/internal/model"
)

const (
	defaultDateWindowDays = 30
	lowestRatedMinSamples = 3
	lowestRatedLimit      = 5
	unknownKey            = "unknown"
)

type pathAcc struct {
	count       int
	ratingSum   int
	ratingCount int
}

// RatingAccumulator builds RatingStats in one pass.
type RatingAccumulator struct {
	engine *Engine
	window *dateWindow

	total       int
	withText    int
	ratingSum   int
	ratingCount int
	histogram   map[int]int
	byApp       map[string]int
	byDevice    map[string]int
	byDate      map[string]int
	paths       map[string]*pathAcc
}

type dateWindow struct {
	from, to time.Time
}

func (w *dateWindow) contains(t time.Time) bool {
	return w == nil || (!t.Before(w.from) && t.Before(w.to))
}

// NewRatingAccumulator creates an accumulator. Without an explicit range the
// date breakdown covers the last 30 days.
func (e *Engine) NewRatingAccumulator(pred model.AggregationPredicate) *RatingAccumulator {
	var w *dateWindow
	if !pred.HasRange() {
		now := e.now().In(e.loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.loc)
		w = &dateWindow{
			from: today.AddDate(0, 0, -(defaultDateWindowDays - 1)),
			to:   today.AddDate(0, 0, 1),
		}
	}
	return &RatingAccumulator{
		engine:    e,
		window:    w,
		histogram: make(map[int]int),
		byApp:     make(map[string]int),
		byDevice:  make(map[string]int),
		byDate:    make(map[string]int),
		paths:     make(map[string]*pathAcc),
	}
}

// Add folds one record into the accumulator
func (a *RatingAccumulator) Add(_ int, r model.FeedbackRecord) {
	a.total++
	if r.HasText() {
		a.withText++
	}

	rating, hasRating := r.FirstRating()
	if hasRating {
		a.histogram[rating.Score]++
		a.ratingSum += rating.Score
		a.ratingCount++
	}

	app := r.AppName()
	if app == "" {
		app = unknownKey
	}
	a.byApp[app]++

	device := string(r.Context.DeviceType)
	if device == "" {
		device = unknownKey
	}
	a.byDevice[device]++

	if a.window.contains(r.SubmittedAt) {
		a.byDate[civilDate(r, a.engine)]++
	}

	if path := strings.TrimSpace(r.Context.Pathname); path != "" {
		p := a.paths[path]
		if p == nil {
			p = &pathAcc{}
			a.paths[path] = p
		}
		p.count++
		if hasRating {
			p.ratingSum += rating.Score
			p.ratingCount++
		}
	}
}

// Merge folds another partition's accumulator into a
func (a *RatingAccumulator) Merge(o *RatingAccumulator) {
	a.total += o.total
	a.withText += o.withText
	a.ratingSum += o.ratingSum
	a.ratingCount += o.ratingCount
	mergeCounts(a.histogram, o.histogram)
	mergeCounts(a.byApp, o.byApp)
	mergeCounts(a.byDevice, o.byDevice)
	mergeCounts(a.byDate, o.byDate)
	for path, op := range o.paths {
		p := a.paths[path]
		if p == nil {
			p = &pathAcc{}
			a.paths[path] = p
		}
		p.count += op.count
		p.ratingSum += op.ratingSum
		p.ratingCount += op.ratingCount
	}
}

// Result produces the immutable report
func (a *RatingAccumulator) Result() model.RatingStats {
	stats := model.RatingStats{
		TotalCount:    a.total,
		CountWithText: a.withText,
		Masked:        model.IsMasked(a.total),
		RatingCount:   a.ratingCount,
		AverageRating: average(a.ratingSum, a.ratingCount),
		Histogram:     copyCounts(a.histogram),
		ByApp:         copyCounts(a.byApp),
		ByDevice:      copyCounts(a.byDevice),
		ByDate:        make([]model.DateCount, 0, len(a.byDate)),
	}

	for date, n := range a.byDate {
		stats.ByDate = append(stats.ByDate, model.DateCount{Date: date, Count: n})
	}
	sort.Slice(stats.ByDate, func(i, j int) bool { return stats.ByDate[i].Date < stats.ByDate[j].Date })

	paths := make([]model.PathnameStats, 0, len(a.paths))
	for path, p := range a.paths {
		paths = append(paths, model.PathnameStats{
			Pathname:      path,
			Count:         p.count,
			RatingCount:   p.ratingCount,
			AverageRating: average(p.ratingSum, p.ratingCount),
		})
	}
	sort.Slice(paths, func(i, j int) bool {
		if paths[i].Count != paths[j].Count {
			return paths[i].Count > paths[j].Count
		}
		return paths[i].Pathname < paths[j].Pathname
	})
	stats.ByPathname = paths

	lowest := make([]model.PathnameStats, 0, lowestRatedLimit)
	for _, p := range paths {
		if p.RatingCount >= lowestRatedMinSamples {
			lowest = append(lowest, p)
		}
	}
	sort.SliceStable(lowest, func(i, j int) bool {
		if lowest[i].AverageRating != lowest[j].AverageRating {
			return lowest[i].AverageRating < lowest[j].AverageRating
		}
		return lowest[i].Pathname < lowest[j].Pathname
	})
	if len(lowest) > lowestRatedLimit {
		lowest = lowest[:lowestRatedLimit]
	}
	stats.LowestRatedPaths = lowest

	return stats
}

func average(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func mergeCounts[K comparable](dst, src map[K]int) {
	for k, v := range src {
		dst[k] += v
	}
}

func copyCounts[K comparable](src map[K]int) map[K]int {
	out := make(map[K]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
