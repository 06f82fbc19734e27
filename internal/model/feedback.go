package model

import "time"

// Feedback is a rating left by an attendee for a session.
type Feedback struct {
	ID        int64
	EventID   int64
	SessionID int64
	UserID    int64
	Rating    int
	Comment   string
	Tags      []string
	Anonymous bool
	CreatedAt time.Time
}

// CreateFeedbackRequest submits feedback for a session.
type CreateFeedbackRequest struct {
	EventID   int64    `json:"event_id" validate:"required,gt=0"`
	SessionID int64    `json:"session_id" validate:"required,gt=0"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment" validate:"max=2000"`
	Tags      []string `json:"tags" validate:"max=10,dive,required,max=32"`
	Anonymous bool     `json:"anonymous"`
}

// FeedbackResponse hides the author of anonymous feedback.
type FeedbackResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	SessionID int64     `json:"session_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Tags      []string  `json:"tags"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse renders the feedback, omitting user_id when anonymous.
func (f *Feedback) ToResponse() FeedbackResponse {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	resp := FeedbackResponse{
		ID:        f.ID,
		EventID:   f.EventID,
		SessionID: f.SessionID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		Tags:      tags,
		Anonymous: f.Anonymous,
		CreatedAt: f.CreatedAt,
	}
	if !f.Anonymous {
		uid := f.UserID
		resp.UserID = &uid
	}
	return resp
}
