package service

import (
	"context"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

// UserStore is the user persistence the services depend on.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

// EventStore is the event and attendee persistence the services depend on.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	GetByAccessCode(ctx context.Context, code string) (*model.Event, error)
	List(ctx context.Context, organizerID int64) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	UpdateAccessCode(ctx context.Context, id int64, code string) error
	AddAttendee(ctx context.Context, eventID, userID int64) error
	IsAttendee(ctx context.Context, eventID, userID int64) (bool, error)
}

type SessionStore interface {
	Create(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Session, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type FeedbackStore interface {
	Create(ctx context.Context, f *model.Feedback) error
	ListByEvent(ctx context.Context, eventID int64) ([]model.Feedback, error)
	ListBySession(ctx context.Context, sessionID int64) ([]model.Feedback, error)
}

type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Question, error)
	ListBySession(ctx context.Context, sessionID int64) ([]model.Question, error)
	Upvote(ctx context.Context, id int64) error
	MarkAnswered(ctx context.Context, id int64) error
}
