package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

// world is a populated set of stores: an organizer with one active event, an
// attendee who joined it and an outsider who did not.
type world struct {
	users     *stubUsers
	events    *stubEvents
	sessions  *stubSessions
	feedback  *stubFeedback
	questions *stubQuestions
	event     *model.Event
}

func newWorld(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()
	w := &world{
		users:     newStubUsers(),
		events:    newStubEvents(),
		sessions:  newStubSessions(),
		feedback:  &stubFeedback{},
		questions: newStubQuestions(),
	}

	org := w.users.add("Olga", "org@x.com", model.RoleOrganizer)
	ann := w.users.add("Ann", "a@x.com", model.RoleAttendee)
	w.users.add("Out", "out@x.com", model.RoleAttendee)

	w.event = &model.Event{
		Title: "Tech Conference 2025", Date: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		OrganizerID: org.ID, AccessCode: "TECH2025", Active: true,
	}
	require.NoError(t, w.events.Create(ctx, w.event))
	require.NoError(t, w.events.AddAttendee(ctx, w.event.ID, ann.ID))
	return w
}

func (w *world) addSession(t *testing.T, eventID int64, start string) *model.Session {
	t.Helper()
	s := &model.Session{EventID: eventID, Title: "Talk " + start, Speaker: "Dr. Smith", StartTime: start, EndTime: "23:59", Status: model.SessionUpcoming}
	require.NoError(t, w.sessions.Create(context.Background(), s))
	return s
}

func TestCreateSession(t *testing.T) {
	w := newWorld(t)
	svc := NewSessionService(w.users, w.events, w.sessions)
	ctx := context.Background()

	req := model.CreateSessionRequest{
		Title: "Introduction to AI", Speaker: "Dr. Smith",
		StartTime: "09:00", EndTime: "10:30",
	}

	s, err := svc.Create(ctx, "org@x.com", w.event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, model.SessionUpcoming, s.Status)
	assert.Equal(t, w.event.ID, s.EventID)
	assert.NotZero(t, s.ID)

	_, err = svc.Create(ctx, "a@x.com", w.event.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, "org@x.com", 999, req)
	assert.ErrorIs(t, err, ErrEventNotFound)

	req.EndTime = "08:00"
	_, err = svc.Create(ctx, "org@x.com", w.event.ID, req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestListSessions(t *testing.T) {
	w := newWorld(t)
	svc := NewSessionService(w.users, w.events, w.sessions)
	ctx := context.Background()

	w.addSession(t, w.event.ID, "11:00")
	w.addSession(t, w.event.ID, "09:00")

	sessions, err := svc.List(ctx, "a@x.com", w.event.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "09:00", sessions[0].StartTime)

	_, err = svc.List(ctx, "out@x.com", w.event.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateSessionStatus(t *testing.T) {
	w := newWorld(t)
	svc := NewSessionService(w.users, w.events, w.sessions)
	ctx := context.Background()
	s := w.addSession(t, w.event.ID, "09:00")

	updated, err := svc.UpdateStatus(ctx, "org@x.com", s.ID, model.SessionActive)
	require.NoError(t, err)
	assert.Equal(t, model.SessionActive, updated.Status)

	_, err = svc.UpdateStatus(ctx, "a@x.com", s.ID, model.SessionCompleted)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateStatus(ctx, "org@x.com", s.ID, "paused")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "org@x.com", 999, model.SessionActive)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
