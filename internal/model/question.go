package model

import "time"

// Question actions accepted by PATCH /questions/{id}.
const (
	ActionUpvote         = "upvote"
	ActionMarkAsAnswered = "markAsAnswered"
)

// Question is an audience question asked during a session.
type Question struct {
	ID        int64
	EventID   int64
	SessionID int64
	UserID    int64
	Text      string
	Upvotes   int
	Answered  bool
	Anonymous bool
	CreatedAt time.Time
}

// CreateQuestionRequest asks a question in a session.
type CreateQuestionRequest struct {
	EventID   int64  `json:"event_id" validate:"required,gt=0"`
	SessionID int64  `json:"session_id" validate:"required,gt=0"`
	Question  string `json:"question" validate:"required,max=1000"`
	Anonymous bool   `json:"anonymous"`
}

// QuestionActionRequest is the body of PATCH /questions/{id}.
type QuestionActionRequest struct {
	Action string `json:"action" validate:"required"`
}

// QuestionResponse hides the author of anonymous questions.
type QuestionResponse struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	SessionID int64     `json:"session_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Question  string    `json:"question"`
	Upvotes   int       `json:"upvotes"`
	Answered  bool      `json:"answered"`
	Anonymous bool      `json:"anonymous"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse renders the question, omitting user_id when anonymous.
func (q *Question) ToResponse() QuestionResponse {
	resp := QuestionResponse{
		ID:        q.ID,
		EventID:   q.EventID,
		SessionID: q.SessionID,
		Question:  q.Text,
		Upvotes:   q.Upvotes,
		Answered:  q.Answered,
		Anonymous: q.Anonymous,
		CreatedAt: q.CreatedAt,
	}
	if !q.Anonymous {
		uid := q.UserID
		resp.UserID = &uid
	}
	return resp
}
