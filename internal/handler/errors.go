package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/realtimefeedback/feedback-api/internal/middleware"
	"github.com/realtimefeedback/feedback-api/internal/service"
)

// Client-facing messages whose wording is part of the API.
const (
	msgEmailExists        = "Email already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgAccessCodeTaken    = "Access code already in use"
	msgInvalidAccessCode  = "Invalid access code"
	msgEventInactive      = "This event is no longer active"
	msgAlreadyAttendee    = "User is already an attendee of this event"
	msgInvalidAction      = "Invalid action"
)

// writeServiceError maps a service error to its HTTP status. Server-side
// failures are logged with the request logger; client errors are not.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		writeJSON(w, http.StatusBadRequest, errorResponse(msgEmailExists))
	case errors.Is(err, service.ErrAccessCodeTaken):
		writeJSON(w, http.StatusBadRequest, errorResponse(msgAccessCodeTaken))
	case errors.Is(err, service.ErrEventInactive):
		writeJSON(w, http.StatusBadRequest, errorResponse(msgEventInactive))
	case errors.Is(err, service.ErrAlreadyAttendee):
		writeJSON(w, http.StatusBadRequest, errorResponse(msgAlreadyAttendee))
	case errors.Is(err, service.ErrInvalidAction):
		writeJSON(w, http.StatusBadRequest, errorResponse(msgInvalidAction))
	case errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrSessionMismatch),
		errors.Is(err, service.ErrMissingFilter):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))

	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse(msgInvalidCredentials))
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse("forbidden"))

	case errors.Is(err, service.ErrInvalidAccessCode):
		writeJSON(w, http.StatusNotFound, errorResponse(msgInvalidAccessCode))
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))

	case errors.Is(err, service.ErrServiceUnavailable):
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("persistence unavailable")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse("service unavailable"))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

// callerEmail returns the authenticated email, writing 401 when absent.
func callerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return "", false
	}
	return email, true
}
