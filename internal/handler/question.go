package handler

import (
	"context"
	"net/http"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

type QuestionService interface {
	Ask(ctx context.Context, email string, req model.CreateQuestionRequest) (model.QuestionResponse, error)
	List(ctx context.Context, email string, eventID, sessionID int64) ([]model.QuestionResponse, error)
	Act(ctx context.Context, email string, id int64, action string) (model.QuestionResponse, error)
}

// QuestionHandler handles HTTP requests for live Q&A.
type QuestionHandler struct {
	service  QuestionService
	validate *Validator
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(svc QuestionService, v *Validator) *QuestionHandler {
	return &QuestionHandler{service: svc, validate: v}
}

// HandleAsk handles POST /questions requests.
func (h *QuestionHandler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req model.CreateQuestionRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Ask(r.Context(), email, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /questions?event_id=|session_id= requests.
func (h *QuestionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
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

// HandleAct handles PATCH /questions/{id} requests.
func (h *QuestionHandler) HandleAct(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.QuestionActionRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Act(r.Context(), email, id, req.Action)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
