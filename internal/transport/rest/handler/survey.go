package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"innsikt/internal/model"
	"innsikt/internal/transport/rest/middleware"
)

// SurveyCatalog manages a team's survey catalog
type SurveyCatalog interface {
	Create(ctx context.Context, team string, req *model.SurveyRequest) (*model.Survey, error)
	GetByID(ctx context.Context, team, id string) (*model.Survey, error)
	ListByTeam(ctx context.Context, team string) ([]*model.Survey, error)
}

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc SurveyCatalog
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc SurveyCatalog) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// Create handles POST /v1/surveys
// @Summary Register a survey
// @Tags surveys
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param body body model.SurveyRequest true "survey"
// @Success 201 {object} model.Survey
// @Failure 400 {object} ErrorResponse
// @Router /v1/surveys [post]
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.SurveyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), middleware.GetTeam(r.Context()), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, survey)
}

// Get handles GET /v1/surveys/{surveyId}
// @Summary Get a survey
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param surveyId path string true "survey id"
// @Success 200 {object} model.Survey
// @Failure 404 {object} ErrorResponse
// @Router /v1/surveys/{surveyId} [get]
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), middleware.GetTeam(r.Context()), surveyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// List handles GET /v1/surveys
// @Summary List surveys of a team
// @Tags surveys
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Success 200 {object} map[string][]model.Survey
// @Router /v1/surveys [get]
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	surveys, err := h.surveySvc.ListByTeam(r.Context(), middleware.GetTeam(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}
