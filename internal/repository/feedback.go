package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

const feedbackColumns = `id, event_id, session_id, user_id, rating, comment, tags, anonymous, created_at`

// FeedbackRepository handles feedback persistence operations.
type FeedbackRepository struct {
	db DBTX
}

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(db DBTX) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts feedback and sets its generated ID and creation time. Tags
// are stored as a JSON array.
func (r *FeedbackRepository) Create(ctx context.Context, f *model.Feedback) error {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	query := `INSERT INTO feedback (event_id, session_id, user_id, rating, comment, tags, anonymous)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		f.EventID, f.SessionID, f.UserID, f.Rating, f.Comment, string(encoded), f.Anonymous,
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

	f.ID = id
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM feedback WHERE id = ?`, id).Scan(&f.CreatedAt)
}

// ListByEvent returns all feedback for an event, newest first.
func (r *FeedbackRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE event_id = ? ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, eventID)
}

// ListBySession returns all feedback for a session, newest first.
func (r *FeedbackRepository) ListBySession(ctx context.Context, sessionID int64) ([]model.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE session_id = ? ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, sessionID)
}

func (r *FeedbackRepository) list(ctx context.Context, query string, arg int64) ([]model.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Feedback{}
	for rows.Next() {
		var (
			f    model.Feedback
			tags []byte
		)
		if err := rows.Scan(
			&f.ID, &f.EventID, &f.SessionID, &f.UserID, &f.Rating, &f.Comment, &tags, &f.Anonymous, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &f.Tags); err != nil {
				return nil, fmt.Errorf("decode tags of feedback %d: %w", f.ID, err)
			}
		}
		items = append(items, f)
	}

	return items, rows.Err()
}
