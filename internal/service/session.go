package service

import (
	"context"
	"errors"
	"time"

	"github.com/realtimefeedback/feedback-api/internal/model"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

const clockLayout = "15:04"

// SessionService manages the sessions of an event.
type SessionService struct {
	access
	sessions SessionStore
}

// NewSessionService creates a new SessionService.
func NewSessionService(users UserStore, events EventStore, sessions SessionStore) *SessionService {
	return &SessionService{
		access:   access{users: users, events: events},
		sessions: sessions,
	}
}

// Create adds an upcoming session to an event the caller organizes.
func (s *SessionService) Create(ctx context.Context, email string, eventID int64, req model.CreateSessionRequest) (*model.Session, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedEvent(ctx, user, eventID); err != nil {
		return nil, err
	}

	start, err := time.Parse(clockLayout, req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeRange
	}
	end, err := time.Parse(clockLayout, req.EndTime)
	if err != nil || !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	session := &model.Session{
		EventID:     eventID,
		Title:       req.Title,
		Speaker:     req.Speaker,
		Description: req.Description,
		StartTime:   start.Format(clockLayout),
		EndTime:     end.Format(clockLayout),
		Status:      model.SessionUpcoming,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, ErrEventNotFound
		}
		return nil, unavailable(err)
	}
	return session, nil
}

// List returns an event's sessions to its participants.
func (s *SessionService) List(ctx context.Context, email string, eventID int64) ([]model.Session, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	if _, err := s.participantEvent(ctx, user, eventID); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, unavailable(err)
	}
	return sessions, nil
}

// UpdateStatus moves a session to a new status. Only the organizer of the
// parent event may do so.
func (s *SessionService) UpdateStatus(ctx context.Context, email string, id int64, status string) (*model.Session, error) {
	switch status {
	case model.SessionUpcoming, model.SessionActive, model.SessionCompleted:
	default:
		return nil, ErrInvalidStatus
	}

	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	session, err := findSession(ctx, s.sessions, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedEvent(ctx, user, session.EventID); err != nil {
		return nil, err
	}

	if err := s.sessions.UpdateStatus(ctx, id, status); err != nil {
		return nil, unavailable(err)
	}
	session.Status = status
	return session, nil
}

func findSession(ctx context.Context, sessions SessionStore, id int64) (*model.Session, error) {
	session, err := sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, unavailable(err)
	}
	return session, nil
}

// sessionInEvent loads a session and checks that it belongs to the event.
func sessionInEvent(ctx context.Context, sessions SessionStore, eventID, sessionID int64) (*model.Session, error) {
	session, err := findSession(ctx, sessions, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EventID != eventID {
		return nil, ErrSessionMismatch
	}
	return session, nil
}

// listScope resolves the event a list query is about and checks that the
// caller participates in it. A session filter takes precedence over an event
// filter.
func listScope(ctx context.Context, a access, sessions SessionStore, user *model.User, eventID, sessionID int64) (int64, error) {
	switch {
	case sessionID > 0:
		session, err := findSession(ctx, sessions, sessionID)
		if err != nil {
			return 0, err
		}
		eventID = session.EventID
	case eventID <= 0:
		return 0, ErrMissingFilter
	}

	if _, err := a.participantEvent(ctx, user, eventID); err != nil {
		return 0, err
	}
	return eventID, nil
}
