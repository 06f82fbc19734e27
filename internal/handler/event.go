package handler

import (
	"context"
	"net/http"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

type EventService interface {
	Create(ctx context.Context, email string, req model.CreateEventRequest) (model.MessageResponse, error)
	Get(ctx context.Context, email string, id int64) (model.EventResponse, error)
	List(ctx context.Context, email string, organizerID int64) ([]model.EventResponse, error)
	Update(ctx context.Context, email string, id int64, req model.UpdateEventRequest) (model.EventResponse, error)
	RegenerateAccessCode(ctx context.Context, email string, id int64) (model.AccessCodeResponse, error)
	Join(ctx context.Context, email, code string) (model.JoinEventResponse, error)
}

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service  EventService
	validate *Validator
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(svc EventService, v *Validator) *EventHandler {
	return &EventHandler{service: svc, validate: v}
}

// HandleCreate handles POST /events/create requests.
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Create(r.Context(), email, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleList handles GET /events requests.
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	organizerID, ok := queryID(w, r, "organizer_id")
	if !ok {
		return
	}

	events, err := h.service.List(r.Context(), email, organizerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

// HandleGet handles GET /events/{id} requests.
func (h *EventHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	event, err := h.service.Get(r.Context(), email, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// HandleUpdate handles PATCH /events/{id} requests.
func (h *EventHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	event, err := h.service.Update(r.Context(), email, id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// HandleRegenerateAccessCode handles POST /events/{id}/access-code requests.
func (h *EventHandler) HandleRegenerateAccessCode(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.service.RegenerateAccessCode(r.Context(), email, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleJoin handles POST /events/join requests.
func (h *EventHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	email, ok := callerEmail(w, r)
	if !ok {
		return
	}

	var req model.JoinEventRequest
	if !h.validate.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Join(r.Context(), email, req.AccessCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
