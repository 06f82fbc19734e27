package model

import "time"

// DateLayout is the wire and storage format of an event date.
const DateLayout = "2006-01-02"

// Event represents an event row.
type Event struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time
	Location    string
	OrganizerID int64
	AccessCode  string
	Active      bool
	CreatedAt   time.Time
}

// CreateEventRequest represents an event creation request. Every field is required.
type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Location    string `json:"location" validate:"required,max=255"`
	OrganizerID int64  `json:"organizer_id" validate:"required,gt=0"`
	AccessCode  string `json:"access_code" validate:"required,max=32"`
}

// UpdateEventRequest is a partial update; nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=255"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Date        *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
	Location    *string `json:"location" validate:"omitnil,min=1,max=255"`
	Active      *bool   `json:"active"`
}

// JoinEventRequest carries the shared access code of the event to join.
type JoinEventRequest struct {
	AccessCode string `json:"access_code" validate:"required,max=32"`
}

// EventResponse is the API representation of an event.
type EventResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	OrganizerID int64     `json:"organizer_id"`
	AccessCode  string    `json:"access_code,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventSummary is returned to attendees after joining; it omits the access code.
type EventSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
}

// JoinEventResponse acknowledges a successful join.
type JoinEventResponse struct {
	Success bool         `json:"success"`
	Event   EventSummary `json:"event"`
}

// AccessCodeResponse carries a regenerated access code.
type AccessCodeResponse struct {
	AccessCode string `json:"access_code"`
}

// MessageResponse is a plain acknowledgement with the id of the created row.
type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// ToResponse renders the event. The access code is only included when
// withCode is set, i.e. for the organizer.
func (e *Event) ToResponse(withCode bool) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(DateLayout),
		Location:    e.Location,
		OrganizerID: e.OrganizerID,
		Active:      e.Active,
		CreatedAt:   e.CreatedAt,
	}
	if withCode {
		resp.AccessCode = e.AccessCode
	}
	return resp
}

// Summary renders the attendee-facing view of the event.
func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(DateLayout),
		Location:    e.Location,
	}
}
