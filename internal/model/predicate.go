package model

import (
	"sort"
	"strings"
	"time"
)

// SegmentFilter is a key=value constraint on a record's context tags
type SegmentFilter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AggregationPredicate is the canonical filter every report runs under.
// Zero-valued optional fields mean "any".
type AggregationPredicate struct {
	Team       string          `json:"team"`
	App        string          `json:"app,omitempty"`
	From       *time.Time      `json:"from,omitempty"` // inclusive
	To         *time.Time      `json:"to,omitempty"`   // exclusive
	SurveyID   string          `json:"surveyId,omitempty"`
	DeviceType DeviceType      `json:"deviceType,omitempty"`
	Segments   []SegmentFilter `json:"segments,omitempty"`
	Task       string          `json:"task,omitempty"` // funnel drill-down, not a record filter
}

// HasRange reports whether either date bound is set
func (p AggregationPredicate) HasRange() bool {
	return p.From != nil || p.To != nil
}

// Matches applies every record-level constraint. Task is ignored here.
func (p AggregationPredicate) Matches(r FeedbackRecord) bool {
	if r.Team != p.Team {
		return false
	}
	if p.App != "" && r.AppName() != p.App {
		return false
	}
	if p.From != nil && r.SubmittedAt.Before(*p.From) {
		return false
	}
	if p.To != nil && !r.SubmittedAt.Before(*p.To) {
		return false
	}
	if p.SurveyID != "" && r.SurveyID != p.SurveyID {
		return false
	}
	if p.DeviceType != "" && r.Context.DeviceType != p.DeviceType {
		return false
	}
	for _, s := range p.Segments {
		if v, ok := r.Context.Tags[s.Key]; !ok || v != s.Value {
			return false
		}
	}
	return true
}

// Key is a stable textual form of the predicate, used for cache keys
func (p AggregationPredicate) Key() string {
	var b strings.Builder
	b.WriteString("team=" + p.Team)
	b.WriteString("|app=" + p.App)
	if p.From != nil {
		b.WriteString("|from=" + p.From.UTC().Format(time.RFC3339))
	}
	if p.To != nil {
		b.WriteString("|to=" + p.To.UTC().Format(time.RFC3339))
	}
	b.WriteString("|survey=" + p.SurveyID)
	b.WriteString("|device=" + string(p.DeviceType))

	segs := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		segs = append(segs, s.Key+"="+s.Value)
	}
	sort.Strings(segs)
	b.WriteString("|seg=" + strings.Join(segs, ","))
	b.WriteString("|task=" + p.Task)
	return b.String()
}
