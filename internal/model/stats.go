package model

// MinAggregationThreshold is the smallest cohort shown without masking
const MinAggregationThreshold = 5

// IsMasked reports whether a cohort of n records must be redacted in the UI
func IsMasked(n int) bool {
	return n > 0 && n < MinAggregationThreshold
}

// DateCount is a count for one civil date (YYYY-MM-DD)
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PathnameStats is the rating summary for one pathname
type PathnameStats struct {
	Pathname      string  `json:"pathname"`
	Count         int     `json:"count"`
	RatingCount   int     `json:"ratingCount"`
	AverageRating float64 `json:"averageRating"`
}

// RatingStats is the numeric summary of a record set
type RatingStats struct {
	TotalCount       int             `json:"totalCount"`
	CountWithText    int             `json:"countWithText"`
	Masked           bool            `json:"masked"`
	RatingCount      int             `json:"ratingCount"`
	AverageRating    float64         `json:"averageRating"`
	Histogram        map[int]int     `json:"histogram"`
	ByApp            map[string]int  `json:"byApp"`
	ByDevice         map[string]int  `json:"byDevice"`
	ByDate           []DateCount     `json:"byDate"`
	ByPathname       []PathnameStats `json:"byPathname"`
	LowestRatedPaths []PathnameStats `json:"lowestRatedPaths"`
}

// BlockerCount is an exact blocker phrase and how often it was given
type BlockerCount struct {
	Blocker string `json:"blocker"`
	Count   int    `json:"count"`
}

// TaskStats is the funnel for one task label
type TaskStats struct {
	Task                 string         `json:"task"`
	Total                int            `json:"total"`
	Success              int            `json:"success"`
	Partial              int            `json:"partial"`
	Failure              int            `json:"failure"`
	SuccessRate          float64        `json:"successRate"`
	SuccessRateFormatted string         `json:"successRateFormatted"`
	Blockers             []BlockerCount `json:"blockers"`
}

// DailySuccess is submissions and successes for one civil date
type DailySuccess struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Success int    `json:"success"`
}

// TaskFunnelStats is the top-tasks report
type TaskFunnelStats struct {
	TotalSubmissions int            `json:"totalSubmissions"`
	Masked           bool           `json:"masked"`
	Tasks            []TaskStats    `json:"tasks"`
	DailyTrend       []DailySuccess `json:"dailyTrend"`
}

// ThemeResultKind distinguishes user themes from the catch-all bucket
type ThemeResultKind string

const (
	ThemeKindTheme        ThemeResultKind = "THEME"
	ThemeKindUnclassified ThemeResultKind = "UNCLASSIFIED"
)

// UnclassifiedName is the display name of the catch-all bucket
const UnclassifiedName = "Annet"

// ThemeResult is the count and examples for one theme
type ThemeResult struct {
	Kind     ThemeResultKind `json:"kind"`
	ThemeID  string          `json:"themeId,omitempty"`
	Name     string          `json:"name"`
	Color    string          `json:"color,omitempty"`
	Count    int             `json:"count"`
	Examples []string        `json:"examples"`
}

// ThemeStats is the theme classification report
type ThemeStats struct {
	AnalysisContext AnalysisContext `json:"analysisContext"`
	TotalResponses  int             `json:"totalResponses"`
	Masked          bool            `json:"masked"`
	Themes          []ThemeResult   `json:"themes"`
}

// WordCount is one row of the word-frequency table
type WordCount struct {
	Word     string   `json:"word"`
	Count    int      `json:"count"`
	Examples []string `json:"examples"`
}

// WordFrequencyTable is the ranked surface-word report
type WordFrequencyTable struct {
	TotalResponses int         `json:"totalResponses"`
	Words          []WordCount `json:"words"`
}

// PriorityTask is one votable option and its share
type PriorityTask struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Votes      int    `json:"votes"`
	Percentage int    `json:"percentage"`
}

// PriorityVoteStats is the task-priority report
type PriorityVoteStats struct {
	TotalSubmissions int            `json:"totalSubmissions"`
	TotalVotes       int            `json:"totalVotes"`
	Masked           bool           `json:"masked"`
	Tasks            []PriorityTask `json:"tasks"`
	LongNeckCutoff   int            `json:"longNeckCutoff"`
	Top5Percentage   int            `json:"top5Percentage"`
}

// Overview composes every report over one record set
type Overview struct {
	Ratings  RatingStats        `json:"ratings"`
	Tasks    TaskFunnelStats    `json:"tasks"`
	Themes   ThemeStats         `json:"themes"`
	Blockers ThemeStats         `json:"blockers"`
	Words    WordFrequencyTable `json:"words"`
	Priority PriorityVoteStats  `json:"priority"`
}
