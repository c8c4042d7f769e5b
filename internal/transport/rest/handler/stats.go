package handler

import (
	"context"
	"net/http"
	"strings"

	"innsikt/internal/model"
	"innsikt/internal/query"
	"innsikt/internal/transport/rest/middleware"
)

// StatsReporter computes dashboard reports
type StatsReporter interface {
	Ratings(ctx context.Context, pred model.AggregationPredicate) (model.RatingStats, error)
	TaskFunnel(ctx context.Context, pred model.AggregationPredicate) (model.TaskFunnelStats, error)
	Themes(ctx context.Context, pred model.AggregationPredicate, actx model.AnalysisContext) (model.ThemeStats, error)
	WordFrequency(ctx context.Context, pred model.AggregationPredicate, actx model.AnalysisContext) (model.WordFrequencyTable, error)
	PriorityVotes(ctx context.Context, pred model.AggregationPredicate) (model.PriorityVoteStats, error)
	Overview(ctx context.Context, pred model.AggregationPredicate) (model.Overview, error)
}

// StatsHandler handles report endpoints. Every report accepts the same
// filter query parameters: team, app, fromDate, toDate, surveyId,
// deviceType, segment (repeatable, key:value) and task.
type StatsHandler struct {
	stats      StatsReporter
	normalizer *query.Normalizer
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats StatsReporter, normalizer *query.Normalizer) *StatsHandler {
	return &StatsHandler{stats: stats, normalizer: normalizer}
}

// Ratings handles GET /v1/stats/ratings
// @Summary Rating statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param fromDate query string false "YYYY-MM-DD"
// @Param toDate query string false "YYYY-MM-DD, inclusive"
// @Success 200 {object} model.RatingStats
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/ratings [get]
func (h *StatsHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, h.stats.Ratings)
}

// Tasks handles GET /v1/stats/tasks
// @Summary Top-task funnel
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param task query string false "limit to one task"
// @Success 200 {object} model.TaskFunnelStats
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/tasks [get]
func (h *StatsHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, h.stats.TaskFunnel)
}

// Themes handles GET /v1/stats/themes
// @Summary Theme classification of general feedback
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Success 200 {object} model.ThemeStats
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/themes [get]
func (h *StatsHandler) Themes(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, func(ctx context.Context, pred model.AggregationPredicate) (model.ThemeStats, error) {
		return h.stats.Themes(ctx, pred, model.ContextGeneralFeedback)
	})
}

// Blockers handles GET /v1/stats/blockers
// @Summary Theme classification of task blockers
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Success 200 {object} model.ThemeStats
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/blockers [get]
func (h *StatsHandler) Blockers(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, func(ctx context.Context, pred model.AggregationPredicate) (model.ThemeStats, error) {
		return h.stats.Themes(ctx, pred, model.ContextBlocker)
	})
}

// Words handles GET /v1/stats/words
// @Summary Word frequency
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param context query string false "GENERAL_FEEDBACK or BLOCKER"
// @Success 200 {object} model.WordFrequencyTable
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/words [get]
func (h *StatsHandler) Words(w http.ResponseWriter, r *http.Request) {
	actx := model.ContextGeneralFeedback
	if v := strings.TrimSpace(r.URL.Query().Get("context")); v != "" {
		actx = model.AnalysisContext(strings.ToUpper(v))
		if !actx.Valid() {
			writeError(w, http.StatusBadRequest, "context must be one of [GENERAL_FEEDBACK BLOCKER]")
			return
		}
	}
	serveReport(h, w, r, func(ctx context.Context, pred model.AggregationPredicate) (model.WordFrequencyTable, error) {
		return h.stats.WordFrequency(ctx, pred, actx)
	})
}

// Priority handles GET /v1/stats/priority
// @Summary Task priority votes
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Success 200 {object} model.PriorityVoteStats
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/priority [get]
func (h *StatsHandler) Priority(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, h.stats.PriorityVotes)
}

// Overview handles GET /v1/stats/overview
// @Summary Every report over one record set
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Success 200 {object} model.Overview
// @Failure 400 {object} ErrorResponse
// @Router /v1/stats/overview [get]
func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	serveReport(h, w, r, h.stats.Overview)
}

func serveReport[T any](h *StatsHandler, w http.ResponseWriter, r *http.Request, run func(context.Context, model.AggregationPredicate) (T, error)) {
	pred, err := h.normalizer.Normalize(rawFilter(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := run(r.Context(), pred)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func rawFilter(r *http.Request) query.RawFilter {
	q := r.URL.Query()
	team := middleware.GetTeam(r.Context())
	if team == "" {
		team = q.Get("team")
	}
	return query.RawFilter{
		Team:       team,
		App:        q.Get("app"),
		FromDate:   q.Get("fromDate"),
		ToDate:     q.Get("toDate"),
		SurveyID:   q.Get("surveyId"),
		DeviceType: q.Get("deviceType"),
		Segments:   q["segment"],
		Task:       q.Get("task"),
	}
}
