package model

// Session statuses.
const (
	SessionUpcoming  = "upcoming"
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// Session is a talk or slot within an event. Start and end times are "HH:MM".
type Session struct {
	ID          int64  `json:"id"`
	EventID     int64  `json:"event_id"`
	Title       string `json:"title"`
	Speaker     string `json:"speaker"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
}

// CreateSessionRequest adds a session to an event.
type CreateSessionRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Speaker     string `json:"speaker" validate:"required,max=255"`
	Description string `json:"description"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
}

// UpdateSessionStatusRequest moves a session between statuses.
type UpdateSessionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=upcoming active completed"`
}
