package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

const questionColumns = `id, event_id, session_id, user_id, question, upvotes, answered, anonymous, created_at`

// QuestionRepository handles question persistence operations.
type QuestionRepository struct {
	db DBTX
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(db DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create inserts a question and sets its generated ID and creation time.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions (event_id, session_id, user_id, question, anonymous)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, q.EventID, q.SessionID, q.UserID, q.Text, q.Anonymous)
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

	q.ID = id
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM questions WHERE id = ?`, id).Scan(&q.CreatedAt)
}

// GetByID retrieves a question by its ID.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = ?`

	q := &model.Question{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&q.ID, &q.EventID, &q.SessionID, &q.UserID, &q.Text, &q.Upvotes, &q.Answered, &q.Anonymous, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// ListByEvent returns an event's questions, most upvoted first.
func (r *QuestionRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE event_id = ? ORDER BY upvotes DESC, id ASC`
	return r.list(ctx, query, eventID)
}

// ListBySession returns a session's questions, most upvoted first.
func (r *QuestionRepository) ListBySession(ctx context.Context, sessionID int64) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE session_id = ? ORDER BY upvotes DESC, id ASC`
	return r.list(ctx, query, sessionID)
}

// Upvote atomically increments a question's upvote count.
func (r *QuestionRepository) Upvote(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE questions SET upvotes = upvotes + 1 WHERE id = ?`, id)
}

// MarkAnswered flags a question as answered.
func (r *QuestionRepository) MarkAnswered(ctx context.Context, id int64) error {
	return r.exec(ctx, `UPDATE questions SET answered = TRUE WHERE id = ?`, id)
}

func (r *QuestionRepository) exec(ctx context.Context, query string, id int64) error {
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *QuestionRepository) list(ctx context.Context, query string, arg int64) ([]model.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(
			&q.ID, &q.EventID, &q.SessionID, &q.UserID, &q.Text, &q.Upvotes, &q.Answered, &q.Anonymous, &q.CreatedAt,
		); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}
