package service

import (
	"context"
	"errors"
	"time"

	"github.com/realtimefeedback/feedback-api/internal/crypto"
	"github.com/realtimefeedback/feedback-api/internal/metrics"
	"github.com/realtimefeedback/feedback-api/internal/model"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

const (
	eventCreatedMessage = "Event created successfully"
	maxAccessCodeTries  = 5
)

// EventService handles event creation, browsing and attendee joins.
type EventService struct {
	access
	newCode func() (string, error)
}

// NewEventService creates a new EventService.
func NewEventService(users UserStore, events EventStore) *EventService {
	return &EventService{
		access:  access{users: users, events: events},
		newCode: crypto.GenerateAccessCode,
	}
}

// Create stores a new active event. The caller must be the organizer named by
// the request and hold the organizer role. Fields are stored as given.
func (s *EventService) Create(ctx context.Context, email string, req model.CreateEventRequest) (model.MessageResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.MessageResponse{}, err
	}
	if user.ID != req.OrganizerID || user.Role != model.RoleOrganizer {
		return model.MessageResponse{}, ErrForbidden
	}

	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return model.MessageResponse{}, ErrInvalidDate
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		OrganizerID: req.OrganizerID,
		AccessCode:  req.AccessCode,
		Active:      true,
	}

	if err := s.events.Create(ctx, event); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccessCode) {
			return model.MessageResponse{}, ErrAccessCodeTaken
		}
		return model.MessageResponse{}, unavailable(err)
	}

	metrics.EventsCreatedTotal.Inc()
	return model.MessageResponse{Message: eventCreatedMessage, ID: event.ID}, nil
}

// Get returns one event. The access code is only shown to its organizer.
func (s *EventService) Get(ctx context.Context, email string, id int64) (model.EventResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.EventResponse{}, err
	}
	event, err := s.event(ctx, id)
	if err != nil {
		return model.EventResponse{}, err
	}
	return event.ToResponse(event.OrganizerID == user.ID), nil
}

// List returns events, optionally only those of one organizer.
func (s *EventService) List(ctx context.Context, email string, organizerID int64) ([]model.EventResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx, organizerID)
	if err != nil {
		return nil, unavailable(err)
	}

	resp := make([]model.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, events[i].ToResponse(events[i].OrganizerID == user.ID))
	}
	return resp, nil
}

// Update applies a partial update to an event the caller organizes.
func (s *EventService) Update(ctx context.Context, email string, id int64, req model.UpdateEventRequest) (model.EventResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.EventResponse{}, err
	}
	event, err := s.ownedEvent(ctx, user, id)
	if err != nil {
		return model.EventResponse{}, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		date, err := time.Parse(model.DateLayout, *req.Date)
		if err != nil {
			return model.EventResponse{}, ErrInvalidDate
		}
		event.Date = date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Active != nil {
		event.Active = *req.Active
	}

	if err := s.events.Update(ctx, event); err != nil {
		return model.EventResponse{}, unavailable(err)
	}
	return event.ToResponse(true), nil
}

// RegenerateAccessCode replaces the event's access code with a fresh random
// one, retrying when the generated code is already taken.
func (s *EventService) RegenerateAccessCode(ctx context.Context, email string, id int64) (model.AccessCodeResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.AccessCodeResponse{}, err
	}
	if _, err := s.ownedEvent(ctx, user, id); err != nil {
		return model.AccessCodeResponse{}, err
	}

	for range maxAccessCodeTries {
		code, err := s.newCode()
		if err != nil {
			return model.AccessCodeResponse{}, err
		}

		err = s.events.UpdateAccessCode(ctx, id, code)
		switch {
		case err == nil:
			return model.AccessCodeResponse{AccessCode: code}, nil
		case errors.Is(err, repository.ErrDuplicateAccessCode):
			continue
		case errors.Is(err, repository.ErrEventNotFound):
			return model.AccessCodeResponse{}, ErrEventNotFound
		default:
			return model.AccessCodeResponse{}, unavailable(err)
		}
	}
	return model.AccessCodeResponse{}, ErrAccessCodeTaken
}

// Join adds the caller to the attendees of the event with the given code.
func (s *EventService) Join(ctx context.Context, email, code string) (model.JoinEventResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.JoinEventResponse{}, err
	}

	event, err := s.events.GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			metrics.EventJoinsTotal.WithLabelValues("invalid_code").Inc()
			return model.JoinEventResponse{}, ErrInvalidAccessCode
		}
		metrics.EventJoinsTotal.WithLabelValues("error").Inc()
		return model.JoinEventResponse{}, unavailable(err)
	}
	if !event.Active {
		metrics.EventJoinsTotal.WithLabelValues("inactive").Inc()
		return model.JoinEventResponse{}, ErrEventInactive
	}

	if err := s.events.AddAttendee(ctx, event.ID, user.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyJoined) {
			metrics.EventJoinsTotal.WithLabelValues("already_joined").Inc()
			return model.JoinEventResponse{}, ErrAlreadyAttendee
		}
		metrics.EventJoinsTotal.WithLabelValues("error").Inc()
		return model.JoinEventResponse{}, unavailable(err)
	}

	metrics.EventJoinsTotal.WithLabelValues("success").Inc()
	return model.JoinEventResponse{Success: true, Event: event.Summary()}, nil
}
