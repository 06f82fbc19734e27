package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

// SessionRepository handles session persistence operations.
type SessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session and sets its generated ID.
func (r *SessionRepository) Create(ctx context.Context, s *model.Session) error {
	query := `INSERT INTO sessions (event_id, title, speaker, description, start_time, end_time, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		s.EventID, s.Title, s.Speaker, s.Description, s.StartTime, s.EndTime, s.Status,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return ErrInvalidReference
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	s.ID = id
	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.Session, error) {
	query := `SELECT id, event_id, title, speaker, description, start_time, end_time, status
		FROM sessions WHERE id = ?`

	s := &model.Session{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.EventID, &s.Title, &s.Speaker, &s.Description, &s.StartTime, &s.EndTime, &s.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

// ListByEvent returns an event's sessions ordered by start time.
func (r *SessionRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Session, error) {
	query := `SELECT id, event_id, title, speaker, description, start_time, end_time, status
		FROM sessions WHERE event_id = ? ORDER BY start_time ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []model.Session{}
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(
			&s.ID, &s.EventID, &s.Title, &s.Speaker, &s.Description, &s.StartTime, &s.EndTime, &s.Status,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// UpdateStatus sets a session's status.
func (r *SessionRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE sessions SET status = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}
