package analytics

import (
	"math"
	"sort"

	"innsikt/internal/model"
)

const (
	// LongNeckThreshold is the cumulative share that ends the long neck
	LongNeckThreshold = 80
	topShareCount     = 5
)

type optionLabel struct {
	label string
	pos   Position
}

// PriorityAccumulator tallies TASK_PRIORITY multi-choice votes.
type PriorityAccumulator struct {
	submissions int
	votes       map[string]int
	labels      map[string]optionLabel
}

// NewPriorityAccumulator creates an empty tally
func NewPriorityAccumulator() *PriorityAccumulator {
	return &PriorityAccumulator{
		votes:  make(map[string]int),
		labels: make(map[string]optionLabel),
	}
}

// Add counts one vote per distinct selected option
func (a *PriorityAccumulator) Add(idx int, r model.FeedbackRecord) {
	if r.SurveyType != model.SurveyTypeTaskPriority {
		return
	}
	var (
		ans   model.Answer
		found bool
		ai    int
	)
	for i, x := range r.Answers {
		if x.FieldID == model.FieldPriority {
			ans, found, ai = x, true, i
			break
		}
	}
	if !found {
		return
	}
	v, ok := ans.Value.(model.MultiChoiceValue)
	if !ok {
		return
	}

	a.submissions++
	pos := Position{Record: idx, Answer: ai}
	seen := make(map[string]struct{}, len(v.OptionIDs))
	for _, id := range v.OptionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		a.votes[id]++
		a.setLabel(id, optionLabel{label: ans.Question.OptionLabel(id), pos: pos})
	}
}

// setLabel keeps the label seen first in input order
func (a *PriorityAccumulator) setLabel(id string, l optionLabel) {
	cur, ok := a.labels[id]
	if !ok || l.pos.less(cur.pos) {
		a.labels[id] = l
	}
}

// Merge folds another partition's tally into a
func (a *PriorityAccumulator) Merge(o *PriorityAccumulator) {
	a.submissions += o.submissions
	mergeCounts(a.votes, o.votes)
	for id, l := range o.labels {
		a.setLabel(id, l)
	}
}

// Result ranks options by votes and computes the long-neck cutoff
func (a *PriorityAccumulator) Result() model.PriorityVoteStats {
	total := 0
	for _, n := range a.votes {
		total += n
	}

	tasks := make([]model.PriorityTask, 0, len(a.votes))
	for id, n := range a.votes {
		tasks = append(tasks, model.PriorityTask{
			ID:         id,
			Label:      a.labels[id].label,
			Votes:      n,
			Percentage: Percentage(n, total),
		})
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Votes != tasks[j].Votes {
			return tasks[i].Votes > tasks[j].Votes
		}
		if tasks[i].Label != tasks[j].Label {
			return tasks[i].Label < tasks[j].Label
		}
		return tasks[i].ID < tasks[j].ID
	})

	pcts := make([]int, len(tasks))
	for i, t := range tasks {
		pcts[i] = t.Percentage
	}
	top := 0
	for i := 0; i < len(pcts) && i < topShareCount; i++ {
		top += pcts[i]
	}

	return model.PriorityVoteStats{
		TotalSubmissions: a.submissions,
		TotalVotes:       total,
		Masked:           model.IsMasked(a.submissions),
		Tasks:            tasks,
		LongNeckCutoff:   LongNeckCutoff(pcts),
		Top5Percentage:   top,
	}
}

// Percentage is round(part/total*100), or 0 when total is 0
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// LongNeckCutoff returns the 1-based count of items whose running sum first
// passes LongNeckThreshold, or len(percentages) if it never does. A sum of
// exactly the threshold does not end the neck: [50 30 10 10] cuts at 3.
func LongNeckCutoff(percentages []int) int {
	sum := 0
	for i, p := range percentages {
		sum += p
		if sum > LongNeckThreshold {
			return i + 1
		}
	}
	return len(percentages)
}
