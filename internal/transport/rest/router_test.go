package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsikt/internal/model"
	"innsikt/internal/query"
	"innsikt/internal/service"
)

type fakeStats struct {
	pred model.AggregationPredicate
	actx model.AnalysisContext
	err  error
}

func (f *fakeStats) Ratings(ctx context.Context, pred model.AggregationPredicate) (model.RatingStats, error) {
	f.pred = pred
	return model.RatingStats{TotalCount: 7, AverageRating: 4.5}, f.err
}

func (f *fakeStats) TaskFunnel(ctx context.Context, pred model.AggregationPredicate) (model.TaskFunnelStats, error) {
	f.pred = pred
	return model.TaskFunnelStats{TotalSubmissions: 3}, f.err
}

func (f *fakeStats) Themes(ctx context.Context, pred model.AggregationPredicate, actx model.AnalysisContext) (model.ThemeStats, error) {
	f.pred, f.actx = pred, actx
	return model.ThemeStats{AnalysisContext: actx}, f.err
}

func (f *fakeStats) WordFrequency(ctx context.Context, pred model.AggregationPredicate, actx model.AnalysisContext) (model.WordFrequencyTable, error) {
	f.pred, f.actx = pred, actx
	return model.WordFrequencyTable{}, f.err
}

func (f *fakeStats) PriorityVotes(ctx context.Context, pred model.AggregationPredicate) (model.PriorityVoteStats, error) {
	f.pred = pred
	return model.PriorityVoteStats{}, f.err
}

func (f *fakeStats) Overview(ctx context.Context, pred model.AggregationPredicate) (model.Overview, error) {
	f.pred = pred
	return model.Overview{}, f.err
}

type fakeFeedback struct {
	got *model.FeedbackSubmission
	err error
}

func (f *fakeFeedback) Submit(ctx context.Context, req *model.FeedbackSubmission) (*model.FeedbackRecord, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &model.FeedbackRecord{ID: "fb-1", Team: req.Team}, nil
}

type fakeThemes struct {
	team string
}

func (f *fakeThemes) List(ctx context.Context, team string) ([]*model.TextTheme, error) {
	f.team = team
	return []*model.TextTheme{{ID: "t1", Team: team, Name: "Innlogging"}}, nil
}

func (f *fakeThemes) Create(ctx context.Context, team string, req *model.ThemeRequest) (*model.TextTheme, error) {
	f.team = team
	return &model.TextTheme{ID: "t2", Team: team, Name: req.Name, Keywords: req.Keywords}, nil
}

func (f *fakeThemes) Update(ctx context.Context, team, id string, req *model.ThemeRequest) (*model.TextTheme, error) {
	return nil, service.ErrNotFound
}

func (f *fakeThemes) Delete(ctx context.Context, team, id string) error {
	if id != "t1" {
		return service.ErrNotFound
	}
	return nil
}

type fakeSurveys struct{}

func (fakeSurveys) Create(ctx context.Context, team string, req *model.SurveyRequest) (*model.Survey, error) {
	return &model.Survey{ID: "s1", Team: team, Title: req.Title, Type: model.SurveyType(req.Type)}, nil
}

func (fakeSurveys) GetByID(ctx context.Context, team, id string) (*model.Survey, error) {
	if id != "s1" {
		return nil, service.ErrNotFound
	}
	return &model.Survey{ID: "s1", Team: team, Title: "Innlogging"}, nil
}

func (fakeSurveys) ListByTeam(ctx context.Context, team string) ([]*model.Survey, error) {
	return []*model.Survey{}, nil
}

type testEnv struct {
	router   http.Handler
	auth     *service.AuthService
	stats    *fakeStats
	feedback *fakeFeedback
	themes   *fakeThemes
}

func newTestEnv(t *testing.T, teams ...string) *testEnv {
	t.Helper()
	if len(teams) == 0 {
		teams = []string{"team-nav"}
	}
	env := &testEnv{
		auth:     service.NewAuthService("admin", "hemmelig", "test-secret", teams, time.Hour),
		stats:    &fakeStats{},
		feedback: &fakeFeedback{},
		themes:   &fakeThemes{},
	}
	env.router = NewRouter(&Container{
		AuthService:     env.auth,
		StatsService:    env.stats,
		FeedbackService: env.feedback,
		ThemeService:    env.themes,
		SurveyService:   fakeSurveys{},
		Normalizer:      query.NewNormalizer(nil),
	})
	return env
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	resp, err := e.auth.Login("admin", "hemmelig")
	require.NoError(t, err)
	return resp.Token
}

func (e *testEnv) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestMetricsAndDocs(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/health", "", nil)

	rec := env.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "innsikt_http_requests_total")

	rec = env.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	decodeBody(t, rec, &doc)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/v1/feedback")
}

func TestRequestIDIsEchoed(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestPreflightSkipsAuth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodOptions, "/v1/stats/ratings?team=team-nav", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid credentials", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "hemmelig"})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp model.LoginResponse
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, []string{"team-nav"}, resp.Teams)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "feil"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStatsAuthorization(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	tests := []struct {
		name   string
		target string
		token  string
		want   int
	}{
		{"no token", "/v1/stats/ratings?team=team-nav", "", http.StatusUnauthorized},
		{"bad token", "/v1/stats/ratings?team=team-nav", "not-a-jwt", http.StatusUnauthorized},
		{"missing team", "/v1/stats/ratings", token, http.StatusBadRequest},
		{"other team", "/v1/stats/ratings?team=team-skatt", token, http.StatusForbidden},
		{"own team", "/v1/stats/ratings?team=team-nav", token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.target, tt.token, nil)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestStatsWildcardTeam(t *testing.T) {
	env := newTestEnv(t, "*")
	rec := env.do(t, http.MethodGet, "/v1/stats/tasks?team=team-skatt", env.token(t), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "team-skatt", env.stats.pred.Team)
}

func TestStatsFilterIsNormalized(t *testing.T) {
	env := newTestEnv(t)
	target := "/v1/stats/ratings?team=team-nav&app=min-side&fromDate=2024-03-01&toDate=2024-03-31" +
		"&deviceType=Mobile&segment=rolle:veileder&segment=ugyldig&task=soke"

	rec := env.do(t, http.MethodGet, target, env.token(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.RatingStats
	decodeBody(t, rec, &stats)
	assert.Equal(t, 7, stats.TotalCount)

	oslo, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)
	pred := env.stats.pred
	assert.Equal(t, "team-nav", pred.Team)
	assert.Equal(t, "min-side", pred.App)
	assert.Equal(t, model.DeviceMobile, pred.DeviceType)
	assert.Equal(t, "soke", pred.Task)
	require.NotNil(t, pred.From)
	require.NotNil(t, pred.To)
	assert.True(t, pred.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, oslo)))
	assert.True(t, pred.To.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, oslo)))
	assert.Equal(t, []model.SegmentFilter{{Key: "rolle", Value: "veileder"}}, pred.Segments)
}

func TestStatsValidationError(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/v1/stats/ratings?team=team-nav&deviceType=phone", env.token(t), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "DeviceType")
}

func TestStatsServiceFailure(t *testing.T) {
	env := newTestEnv(t)
	env.stats.err = errors.New("mongo exploded")
	rec := env.do(t, http.MethodGet, "/v1/stats/overview?team=team-nav", env.token(t), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestThemeReportsUseContext(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	rec := env.do(t, http.MethodGet, "/v1/stats/themes?team=team-nav", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ContextGeneralFeedback, env.stats.actx)

	rec = env.do(t, http.MethodGet, "/v1/stats/blockers?team=team-nav", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ContextBlocker, env.stats.actx)

	rec = env.do(t, http.MethodGet, "/v1/stats/words?team=team-nav&context=blocker", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ContextBlocker, env.stats.actx)

	rec = env.do(t, http.MethodGet, "/v1/stats/words?team=team-nav&context=OTHER", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFeedback(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{
		"team":       "team-nav",
		"surveyId":   "s1",
		"surveyType": "RATING",
		"answers": []map[string]interface{}{
			{"fieldId": "rating", "fieldType": "RATING", "value": map[string]interface{}{"score": 4, "variant": "stars"}},
		},
	}

	rec := env.do(t, http.MethodPost, "/v1/feedback", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"fb-1"}`, rec.Body.String())
	require.NotNil(t, env.feedback.got)
	assert.Equal(t, "team-nav", env.feedback.got.Team)
	require.Len(t, env.feedback.got.Answers, 1)

	env.feedback.err = &query.ValidationError{Fields: []string{"Answers is required"}}
	rec = env.do(t, http.MethodPost, "/v1/feedback", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFeedbackMalformedBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, env.feedback.got)
}

func TestThemeRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	rec := env.do(t, http.MethodGet, "/v1/themes?team=team-nav", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Themes []model.TextTheme `json:"themes"`
	}
	decodeBody(t, rec, &list)
	require.Len(t, list.Themes, 1)
	assert.Equal(t, "team-nav", env.themes.team)

	rec = env.do(t, http.MethodPost, "/v1/themes?team=team-nav", token, model.ThemeRequest{Name: "Ytelse", Keywords: []string{"treg"}})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPut, "/v1/themes/missing?team=team-nav", token, model.ThemeRequest{Name: "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/v1/themes/t1?team=team-nav", token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, "/v1/themes/t9?team=team-nav", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSurveyRoutes(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/v1/surveys?team=team-nav", token, model.SurveyRequest{Title: "Innlogging", Type: "RATING"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/surveys/s1?team=team-nav", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var survey model.Survey
	decodeBody(t, rec, &survey)
	assert.Equal(t, "team-nav", survey.Team)

	rec = env.do(t, http.MethodGet, "/v1/surveys/nope?team=team-nav", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/surveys?team=team-nav", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"surveys":[]}`, rec.Body.String())
}
