package model

import "time"

// AnalysisContext selects which text answers a theme is matched against
type AnalysisContext string

const (
	ContextGeneralFeedback AnalysisContext = "GENERAL_FEEDBACK"
	ContextBlocker         AnalysisContext = "BLOCKER"
)

// Valid reports whether c is a known analysis context
func (c AnalysisContext) Valid() bool {
	return c == ContextGeneralFeedback || c == ContextBlocker
}

// TextTheme is a team-authored keyword group
type TextTheme struct {
	ID              string          `json:"id" bson:"_id,omitempty"`
	Team            string          `json:"team" bson:"team"`
	Name            string          `json:"name" bson:"name"`
	Keywords        []string        `json:"keywords" bson:"keywords"`
	Color           string          `json:"color,omitempty" bson:"color,omitempty"`
	Priority        int             `json:"priority" bson:"priority"` // tie-break only
	AnalysisContext AnalysisContext `json:"analysisContext" bson:"analysisContext"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`
}
