package service

import (
	"errors"
	"fmt"
)

var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidDate       = errors.New("invalid date")
	ErrAccessCodeTaken   = errors.New("access code already in use")
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrEventInactive     = errors.New("event is no longer active")
	ErrAlreadyAttendee   = errors.New("user is already an attendee of this event")

	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidStatus    = errors.New("invalid session status")
	ErrSessionMismatch  = errors.New("session does not belong to event")

	ErrQuestionNotFound = errors.New("question not found")
	ErrInvalidAction    = errors.New("invalid action")
	ErrMissingFilter    = errors.New("event_id or session_id is required")
)

// unavailable marks a persistence failure. The cause stays in the chain for
// logging while callers match on ErrServiceUnavailable.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
}
