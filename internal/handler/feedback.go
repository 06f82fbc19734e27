package handler

import (
	"context"
	"net/http"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

type FeedbackService interface {
	Submit(ctx context.Context, email string, req model.CreateFeedbackRequest) (model.FeedbackResponse, error)
	List(ctx context.Context, email string, eventID, sessionID int64) ([]model.FeedbackResponse, error)
}

// FeedbackHandler handles HTTP requests for session feedback.
type FeedbackHandler struct {
	service  FeedbackService
	validate *Validator
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(svc FeedbackService, v *Validator) *FeedbackHandler {
	return &FeedbackHandler{service: svc, validate: v}
}

// HandleSubmit handles POST /feedback requests.
func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req model.CreateFeedbackRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Submit(r.Context(), email, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /feedback?event_id=|session_id= requests.
func (h *FeedbackHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	eventID, ok := queryID(w, r, "event_id")
	if !ok {
		return
	}
	sessionID, ok := queryID(w, r, "session_id")
	if !ok {
		return
	}

	items, err := h.service.List(r.Context(), email, eventID, sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
