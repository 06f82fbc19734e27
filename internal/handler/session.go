package handler

import (
	"context"
	"net/http"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

type SessionService interface {
	Create(ctx context.Context, email string, eventID int64, req model.CreateSessionRequest) (*model.Session, error)
	List(ctx context.Context, email string, eventID int64) ([]model.Session, error)
	UpdateStatus(ctx context.Context, email string, id int64, status string) (*model.Session, error)
}

// SessionHandler handles HTTP requests for event sessions.
type SessionHandler struct {
	service  SessionService
	validate *Validator
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(svc SessionService, v *Validator) *SessionHandler {
	return &SessionHandler{service: svc, validate: v}
}

// HandleCreate handles POST /events/{id}/sessions requests.
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.CreateSessionRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.Create(r.Context(), email, eventID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// HandleList handles GET /events/{id}/sessions requests.
func (h *SessionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sessions, err := h.service.List(r.Context(), email, eventID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// HandleUpdateStatus handles PATCH /sessions/{id} requests.
func (h *SessionHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateSessionStatusRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	session, err := h.service.UpdateStatus(r.Context(), email, id, req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}
