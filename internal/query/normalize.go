// Package query turns raw dashboard filter parameters into the canonical
// model.AggregationPredicate every report runs under.
package query

import (
	"strings"
	"time"
	_ "time/tzdata"

	"innsikt/internal/logger"
	"innsikt/internal/model"
)

// DefaultTimezone is the civil calendar dates are interpreted in
const DefaultTimezone = "Europe/Oslo"

// RawFilter is the filter as received from a caller
type RawFilter struct {
	Team       string   `json:"team" validate:"required,max=128"`
	App        string   `json:"app,omitempty" validate:"max=128"`
	FromDate   string   `json:"fromDate,omitempty" validate:"civildate"`
	ToDate     string   `json:"toDate,omitempty" validate:"civildate"`
	SurveyID   string   `json:"surveyId,omitempty" validate:"max=128"`
	DeviceType string   `json:"deviceType,omitempty" validate:"omitempty,oneof=mobile tablet desktop unknown"`
	Segments   []string `json:"segments,omitempty" validate:"max=20"`
	Task       string   `json:"task,omitempty" validate:"max=256"`
}

// Normalizer converts RawFilters using a fixed civil timezone
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer creates a Normalizer for loc; nil means DefaultTimezone
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = defaultLocation()
	}
	return &Normalizer{loc: loc}
}

func defaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		// tzdata is embedded, so this only happens with a broken build
		panic(err)
	}
	return loc
}

// Location returns the civil timezone
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Normalize validates raw and builds the predicate. Unparseable date bounds
// are dropped rather than failing the query.
func (n *Normalizer) Normalize(raw RawFilter) (model.AggregationPredicate, error) {
	raw.Team = strings.TrimSpace(raw.Team)
	raw.DeviceType = strings.ToLower(strings.TrimSpace(raw.DeviceType))
	if err := Validate(raw); err != nil {
		return model.AggregationPredicate{}, err
	}

	pred := model.AggregationPredicate{
		Team:     raw.Team,
		App:      strings.TrimSpace(raw.App),
		SurveyID: strings.TrimSpace(raw.SurveyID),
		Task:     strings.TrimSpace(raw.Task),
		Segments: ParseSegments(raw.Segments),
	}
	if raw.DeviceType != "" {
		pred.DeviceType = model.DeviceType(raw.DeviceType)
	}
	if t, ok := n.parseBound(raw.FromDate, false); ok {
		pred.From = &t
	}
	if t, ok := n.parseBound(raw.ToDate, true); ok {
		pred.To = &t
	}
	return pred, nil
}

// parseBound reads a civil date (start of day, or start of the next day for
// an exclusive upper bound). A full timestamp is accepted as the exact instant.
func (n *Normalizer) parseBound(s string, upper bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.ParseInLocation(time.DateOnly, s, n.loc); err == nil {
		if upper {
			d = d.AddDate(0, 0, 1)
		}
		return d, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, true
	}
	logger.Logger.Debug().Str("value", s).Bool("upper", upper).Msg("dropping unparseable date bound")
	return time.Time{}, false
}

// ParseSegments reads "key:value" (or "key=value") pairs, discarding blanks
func ParseSegments(raw []string) []model.SegmentFilter {
	var out []model.SegmentFilter
	for _, s := range raw {
		i := strings.IndexAny(s, ":=")
		if i < 0 {
			continue
		}
		key, val := strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:])
		if key == "" || val == "" {
			continue
		}
		out = append(out, model.SegmentFilter{Key: key, Value: val})
	}
	return out
}
