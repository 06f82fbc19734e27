package service

import (
	"context"
	"errors"

	"github.com/realtimefeedback/feedback-api/internal/model"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

// access resolves the authenticated caller and checks what they may do with
// an event. Organizers own their events; attendees participate in the events
// they joined.
type access struct {
	users  UserStore
	events EventStore
}

// caller loads the user named by the token subject. A token for a user that
// no longer exists is treated as unauthenticated.
func (a access) caller(ctx context.Context, email string) (*model.User, error) {
	if email == "" {
		return nil, ErrUnauthorized
	}
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, unavailable(err)
	}
	return user, nil
}

func (a access) event(ctx context.Context, id int64) (*model.Event, error) {
	event, err := a.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, unavailable(err)
	}
	return event, nil
}

// ownedEvent returns the event if the user organizes it.
func (a access) ownedEvent(ctx context.Context, user *model.User, eventID int64) (*model.Event, error) {
	event, err := a.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != user.ID {
		return nil, ErrForbidden
	}
	return event, nil
}

// participate checks that the user organizes or has joined the event.
func (a access) participate(ctx context.Context, user *model.User, event *model.Event) error {
	if event.OrganizerID == user.ID {
		return nil
	}
	ok, err := a.events.IsAttendee(ctx, event.ID, user.ID)
	if err != nil {
		return unavailable(err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// participantEvent loads the event and checks participation in one step.
func (a access) participantEvent(ctx context.Context, user *model.User, eventID int64) (*model.Event, error) {
	event, err := a.event(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := a.participate(ctx, user, event); err != nil {
		return nil, err
	}
	return event, nil
}
