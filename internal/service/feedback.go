package service

import (
	"context"
	"strconv"

	"github.com/realtimefeedback/feedback-api/internal/metrics"
	"github.com/realtimefeedback/feedback-api/internal/model"
)

// FeedbackService records and lists session ratings.
type FeedbackService struct {
	access
	sessions SessionStore
	feedback FeedbackStore
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(users UserStore, events EventStore, sessions SessionStore, feedback FeedbackStore) *FeedbackService {
	return &FeedbackService{
		access:   access{users: users, events: events},
		sessions: sessions,
		feedback: feedback,
	}
}

// Submit stores feedback from a participant of the event.
func (s *FeedbackService) Submit(ctx context.Context, email string, req model.CreateFeedbackRequest) (model.FeedbackResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return model.FeedbackResponse{}, err
	}
	if _, err := s.participantEvent(ctx, user, req.EventID); err != nil {
		return model.FeedbackResponse{}, err
	}
	if _, err := sessionInEvent(ctx, s.sessions, req.EventID, req.SessionID); err != nil {
		return model.FeedbackResponse{}, err
	}

	f := &model.Feedback{
		EventID:   req.EventID,
		SessionID: req.SessionID,
		UserID:    user.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Tags:      req.Tags,
		Anonymous: req.Anonymous,
	}
	if err := s.feedback.Create(ctx, f); err != nil {
		return model.FeedbackResponse{}, unavailable(err)
	}

	metrics.FeedbackSubmittedTotal.WithLabelValues(strconv.Itoa(f.Rating)).Inc()
	return f.ToResponse(), nil
}

// List returns the feedback of a session, or of a whole event when no
// session is given.
func (s *FeedbackService) List(ctx context.Context, email string, eventID, sessionID int64) ([]model.FeedbackResponse, error) {
	user, err := s.caller(ctx, email)
	if err != nil {
		return nil, err
	}
	eventID, err = listScope(ctx, s.access, s.sessions, user, eventID, sessionID)
	if err != nil {
		return nil, err
	}

	var items []model.Feedback
	if sessionID > 0 {
		items, err = s.feedback.ListBySession(ctx, sessionID)
	} else {
		items, err = s.feedback.ListByEvent(ctx, eventID)
	}
	if err != nil {
		return nil, unavailable(err)
	}

	resp := make([]model.FeedbackResponse, 0, len(items))
	for i := range items {
		resp = append(resp, items[i].ToResponse())
	}
	return resp, nil
}
