package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"innsikt/internal/model"
)

// Outcome option ids of the success field
const (
	OutcomeYes     = "yes"
	OutcomePartial = "partial"
	OutcomeNo      = "no"
)

type taskAcc struct {
	total    int
	success  int
	partial  int
	failure  int
	blockers map[string]int
}

// TaskFunnelAccumulator tallies TOP_TASKS outcomes per task label.
type TaskFunnelAccumulator struct {
	engine      *Engine
	filter      string
	submissions int
	tasks       map[string]*taskAcc
	daily       map[string]*model.DailySuccess
}

// NewTaskFunnelAccumulator creates an accumulator. A non-empty pred.Task
// restricts tallying to records with exactly that task label.
func (e *Engine) NewTaskFunnelAccumulator(pred model.AggregationPredicate) *TaskFunnelAccumulator {
	return &TaskFunnelAccumulator{
		engine: e,
		filter: pred.Task,
		tasks:  make(map[string]*taskAcc),
		daily:  make(map[string]*model.DailySuccess),
	}
}

// taskLabel is the chosen option's label, or the raw text of a free-text task field.
func taskLabel(a model.Answer) string {
	switch v := a.Value.(type) {
	case model.SingleChoiceValue:
		return a.Question.OptionLabel(v.OptionID)
	case model.TextValue:
		return v.Text
	}
	return ""
}

// Add folds one record into the funnel
func (a *TaskFunnelAccumulator) Add(_ int, r model.FeedbackRecord) {
	if r.SurveyType != model.SurveyTypeTopTasks {
		return
	}
	taskAnswer, ok := r.AnswerByField(model.FieldTask)
	if !ok {
		return
	}
	label := taskLabel(taskAnswer)
	if strings.TrimSpace(label) == "" {
		return
	}
	if a.filter != "" && label != a.filter {
		return
	}

	a.submissions++
	t := a.tasks[label]
	if t == nil {
		t = &taskAcc{blockers: make(map[string]int)}
		a.tasks[label] = t
	}
	t.total++

	date := civilDate(r, a.engine)
	day := a.daily[date]
	if day == nil {
		day = &model.DailySuccess{Date: date}
		a.daily[date] = day
	}
	day.Total++

	outcome := ""
	if ans, ok := r.AnswerByField(model.FieldSuccess); ok {
		if v, ok := ans.Value.(model.SingleChoiceValue); ok {
			outcome = v.OptionID
		}
	}
	switch outcome {
	case OutcomeYes:
		t.success++
		day.Success++
	case OutcomePartial:
		t.partial++
	case OutcomeNo:
		t.failure++
	}

	if outcome == OutcomePartial || outcome == OutcomeNo {
		if ans, ok := r.AnswerByField(model.FieldBlocker); ok {
			// exact phrasing only; no trimming or case folding
			if text, ok := ans.Text(); ok && strings.TrimSpace(text) != "" {
				t.blockers[text]++
			}
		}
	}
}

// Merge folds another partition's funnel into a
func (a *TaskFunnelAccumulator) Merge(o *TaskFunnelAccumulator) {
	a.submissions += o.submissions
	for label, ot := range o.tasks {
		t := a.tasks[label]
		if t == nil {
			t = &taskAcc{blockers: make(map[string]int)}
			a.tasks[label] = t
		}
		t.total += ot.total
		t.success += ot.success
		t.partial += ot.partial
		t.failure += ot.failure
		mergeCounts(t.blockers, ot.blockers)
	}
	for date, od := range o.daily {
		d := a.daily[date]
		if d == nil {
			d = &model.DailySuccess{Date: date}
			a.daily[date] = d
		}
		d.Total += od.Total
		d.Success += od.Success
	}
}

// Result produces the report, tasks ordered by total descending
func (a *TaskFunnelAccumulator) Result() model.TaskFunnelStats {
	stats := model.TaskFunnelStats{
		TotalSubmissions: a.submissions,
		Masked:           model.IsMasked(a.submissions),
		Tasks:            make([]model.TaskStats, 0, len(a.tasks)),
		DailyTrend:       make([]model.DailySuccess, 0, len(a.daily)),
	}

	for label, t := range a.tasks {
		rate := 0.0
		if t.total > 0 {
			rate = float64(t.success) / float64(t.total)
		}
		stats.Tasks = append(stats.Tasks, model.TaskStats{
			Task:                 label,
			Total:                t.total,
			Success:              t.success,
			Partial:              t.partial,
			Failure:              t.failure,
			SuccessRate:          rate,
			SuccessRateFormatted: FormatPercent(rate),
			Blockers:             sortedBlockers(t.blockers),
		})
	}
	sort.Slice(stats.Tasks, func(i, j int) bool {
		if stats.Tasks[i].Total != stats.Tasks[j].Total {
			return stats.Tasks[i].Total > stats.Tasks[j].Total
		}
		return stats.Tasks[i].Task < stats.Tasks[j].Task
	})

	for _, d := range a.daily {
		stats.DailyTrend = append(stats.DailyTrend, *d)
	}
	sort.Slice(stats.DailyTrend, func(i, j int) bool { return stats.DailyTrend[i].Date < stats.DailyTrend[j].Date })

	return stats
}

// FormatPercent renders a 0..1 rate as a rounded whole percentage, e.g. "67%"
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}

func sortedBlockers(m map[string]int) []model.BlockerCount {
	out := make([]model.BlockerCount, 0, len(m))
	for text, n := range m {
		out = append(out, model.BlockerCount{Blocker: text, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Blocker < out[j].Blocker
	})
	return out
}
