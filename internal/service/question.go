package service

import (
	"context"
	"errors"

	"github.com/realtimefeedback/feedback-api/internal/metrics"
	"github.com/realtimefeedback/feedback-api/internal/model"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

// QuestionService runs the live Q&A of a session.
type QuestionService struct {
	access
	sessions  SessionStore
	questions QuestionStore
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(users UserStore, events EventStore, sessions SessionStore, questions QuestionStore) *QuestionService {
	return &QuestionService{
		access:    access{users: users, events: events},
		sessions:  sessions,
		questions: questions,
	}
}

// Ask stores a new unanswered question with no upvotes.
func (s *QuestionService) Ask(ctx context.Context, email string, req model.CreateQuestionRequest) (model.QuestionResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.QuestionResponse{}, err
	}
	if _, err := s.participantEvent(ctx, user, req.EventID); err != nil {
		return model.QuestionResponse{}, err
	}
	if _, err := sessionInEvent(ctx, s.sessions, req.EventID, req.SessionID); err != nil {
		return model.QuestionResponse{}, err
	}

	q := &model.Question{
		EventID:   req.EventID,
		SessionID: req.SessionID,
		UserID:    user.ID,
		Text:      req.Question,
		Anonymous: req.Anonymous,
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return model.QuestionResponse{}, unavailable(err)
	}

	metrics.QuestionsTotal.WithLabelValues("asked").Inc()
	return q.ToResponse(), nil
}

// List returns questions ordered by upvotes, most popular first.
func (s *QuestionService) List(ctx context.Context, email string, eventID, sessionID int64) ([]model.QuestionResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	eventID, err = listScope(ctx, s.access, s.sessions, user, eventID, sessionID)
	if err != nil {
		return nil, err
	}

	var items []model.Question
	if sessionID > 0 {
		items, err = s.questions.ListBySession(ctx, sessionID)
	} else {
		items, err = s.questions.ListByEvent(ctx, eventID)
	}
	if err != nil {
		return nil, unavailable(err)
	}

	resp := make([]model.QuestionResponse, 0, len(items))
	for i := range items {
		resp = append(resp, items[i].ToResponse())
	}
	return resp, nil
}

// Act applies an upvote or marks the question answered. Any participant may
// upvote; only the event organizer may mark a question answered.
func (s *QuestionService) Act(ctx context.Context, email string, id int64, action string) (model.QuestionResponse, error) {
	if action != model.ActionUpvote && action != model.ActionMarkAsAnswered {
		return model.QuestionResponse{}, ErrInvalidAction
	}

	user, err := s.caller(ctx, email)
	if err != nil {
		return model.QuestionResponse{}, err
	}
	q, err := s.question(ctx, id)
	if err != nil {
		return model.QuestionResponse{}, err
	}

	switch action {
	case model.ActionUpvote:
		if _, err := s.participantEvent(ctx, user, q.EventID); err != nil {
			return model.QuestionResponse{}, err
		}
		err = s.questions.Upvote(ctx, id)
	case model.ActionMarkAsAnswered:
		if _, err := s.ownedEvent(ctx, user, q.EventID); err != nil {
			return model.QuestionResponse{}, err
		}
		err = s.questions.MarkAnswered(ctx, id)
	}
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return model.QuestionResponse{}, ErrQuestionNotFound
		}
		return model.QuestionResponse{}, unavailable(err)
	}

	metrics.QuestionsTotal.WithLabelValues(action).Inc()

	updated, err := s.question(ctx, id)
	if err != nil {
		return model.QuestionResponse{}, err
	}
	return updated.ToResponse(), nil
}

func (s *QuestionService) question(ctx context.Context, id int64) (*model.Question, error) {
	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, unavailable(err)
	}
	return q, nil
}
