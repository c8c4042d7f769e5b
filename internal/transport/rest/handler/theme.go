package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"innsikt/internal/model"
	"innsikt/internal/transport/rest/middleware"
)

// ThemeManager manages a team's text themes
type ThemeManager interface {
	List(ctx context.Context, team string) ([]*model.TextTheme, error)
	Create(ctx context.Context, team string, req *model.ThemeRequest) (*model.TextTheme, error)
	Update(ctx context.Context, team, id string, req *model.ThemeRequest) (*model.TextTheme, error)
	Delete(ctx context.Context, team, id string) error
}

// ThemeHandler handles theme endpoints
type ThemeHandler struct {
	themeSvc ThemeManager
}

// NewThemeHandler creates a new theme handler
func NewThemeHandler(themeSvc ThemeManager) *ThemeHandler {
	return &ThemeHandler{themeSvc: themeSvc}
}

// List handles GET /v1/themes
// @Summary List themes of a team
// @Tags themes
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Success 200 {object} map[string][]model.TextTheme
// @Router /v1/themes [get]
func (h *ThemeHandler) List(w http.ResponseWriter, r *http.Request) {
	themes, err := h.themeSvc.List(r.Context(), middleware.GetTeam(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"themes": themes})
}

// Create handles POST /v1/themes
// @Summary Create a theme
// @Tags themes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param body body model.ThemeRequest true "theme"
// @Success 201 {object} model.TextTheme
// @Failure 400 {object} ErrorResponse
// @Router /v1/themes [post]
func (h *ThemeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ThemeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	theme, err := h.themeSvc.Create(r.Context(), middleware.GetTeam(r.Context()), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, theme)
}

// Update handles PUT /v1/themes/{id}
// @Summary Update a theme
// @Tags themes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team query string true "team"
// @Param id path string true "theme id"
// @Param body body model.ThemeRequest true "theme"
// @Success 200 {object} model.TextTheme
// @Failure 404 {object} ErrorResponse
// @Router /v1/themes/{id} [put]
func (h *ThemeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.ThemeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	id := mux.Vars(r)["id"]
	theme, err := h.themeSvc.Update(r.Context(), middleware.GetTeam(r.Context()), id, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, theme)
}

// Delete handles DELETE /v1/themes/{id}
// @Summary Delete a theme
// @Tags themes
// @Security BearerAuth
// @Param team query string true "team"
// @Param id path string true "theme id"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /v1/themes/{id} [delete]
func (h *ThemeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.themeSvc.Delete(r.Context(), middleware.GetTeam(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
