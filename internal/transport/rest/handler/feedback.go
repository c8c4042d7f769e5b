package handler

import (
	"context"
	"net/http"

	"innsikt/internal/model"
)

// FeedbackSubmitter stores survey submissions
type FeedbackSubmitter interface {
	Submit(ctx context.Context, req *model.FeedbackSubmission) (*model.FeedbackRecord, error)
}

// FeedbackHandler handles the public submission endpoint
type FeedbackHandler struct {
	feedbackSvc FeedbackSubmitter
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc FeedbackSubmitter) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// SubmitResponse is returned after a submission is stored
type SubmitResponse struct {
	ID string `json:"id"`
}

// Submit handles POST /v1/feedback
// @Summary Submit survey feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param body body model.FeedbackSubmission true "submission"
// @Success 201 {object} SubmitResponse
// @Failure 400 {object} ErrorResponse
// @Router /v1/feedback [post]
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.FeedbackSubmission
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	record, err := h.feedbackSvc.Submit(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, SubmitResponse{ID: record.ID})
}
