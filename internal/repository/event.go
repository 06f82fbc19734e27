package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

const eventColumns = `id, title, description, date, location, organizer_id, access_code, active, created_at`

// EventRepository handles event and attendee persistence operations.
type EventRepository struct {
	db DBTX
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts the event as given and sets its generated ID.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `INSERT INTO events (title, description, date, location, organizer_id, access_code, active)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.OrganizerID,
		event.AccessCode,
		event.Active,
	)
	if err != nil {
		switch {
		case isDuplicateEntryError(err, keyEventAccessCode):
			return ErrDuplicateAccessCode
		case isForeignKeyError(err):
			return ErrInvalidReference
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	event.ID = id
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return scanEvent(r.db.QueryRowContext(ctx, query, id))
}

// GetByAccessCode retrieves an event by its access code.
func (r *EventRepository) GetByAccessCode(ctx context.Context, code string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE access_code = ?`
	return scanEvent(r.db.QueryRowContext(ctx, query, code))
}

// List returns all events, newest date first. A non-zero organizerID filters
// to that organizer's events.
func (r *EventRepository) List(ctx context.Context, organizerID int64) ([]model.Event, error) {
	var (
		b    strings.Builder
		args []any
	)
	b.WriteString(`SELECT ` + eventColumns + ` FROM events`)
	if organizerID != 0 {
		b.WriteString(` WHERE organizer_id = ?`)
		args = append(args, organizerID)
	}
	b.WriteString(` ORDER BY date DESC, id DESC`)

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
			&e.OrganizerID, &e.AccessCode, &e.Active, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Update writes the mutable fields of the event.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `UPDATE events SET title = ?, description = ?, date = ?, location = ?, active = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.Active,
		event.ID,
	)
	return err
}

// UpdateAccessCode replaces the event's access code.
func (r *EventRepository) UpdateAccessCode(ctx context.Context, id int64, code string) error {
	query := `UPDATE events SET access_code = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, code, id)
	if err != nil {
		if isDuplicateEntryError(err, keyEventAccessCode) {
			return ErrDuplicateAccessCode
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// AddAttendee records that a user joined an event.
func (r *EventRepository) AddAttendee(ctx context.Context, eventID, userID int64) error {
	query := `INSERT INTO event_attendees (event_id, user_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID); err != nil {
		switch {
		case isDuplicateEntryError(err, ""):
			return ErrAlreadyJoined
		case isForeignKeyError(err):
			return ErrInvalidReference
		}
		return err
	}
	return nil
}

// IsAttendee reports whether the user joined the event.
func (r *EventRepository) IsAttendee(ctx context.Context, eventID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM event_attendees WHERE event_id = ? AND user_id = ?)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func scanEvent(row *sql.Row) (*model.Event, error) {
	e := &model.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.OrganizerID, &e.AccessCode, &e.Active, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}
