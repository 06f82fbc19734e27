package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/realtimefeedback/feedback-api/internal/model"
)

var feedbackColumnNames = []string{"id", "event_id", "session_id", "user_id", "rating", "comment", "tags", "anonymous", "created_at"}

func TestFeedbackCreate_EncodesTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectExec(`INSERT INTO feedback \(event_id, session_id, user_id, rating, comment, tags, anonymous\)`).
		WithArgs(int64(1), int64(101), int64(2), 4, "Great session", `["engaging","informative"]`, false).
		WillReturnResult(sqlmock.NewResult(5, 1))
	created := time.Date(2025, 5, 15, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT created_at FROM feedback WHERE id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	f := &model.Feedback{
		EventID: 1, SessionID: 101, UserID: 2, Rating: 4,
		Comment: "Great session", Tags: []string{"engaging", "informative"},
	}
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if f.ID != 5 {
		t.Fatalf("expected ID 5, got %d", f.ID)
	}
	if !f.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, f.CreatedAt)
	}
}

func TestFeedbackCreate_NilTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectExec(`INSERT INTO feedback`).
		WithArgs(int64(1), int64(101), int64(2), 5, "", `[]`, true).
		WillReturnResult(sqlmock.NewResult(6, 1))
	mock.ExpectQuery(`SELECT created_at FROM feedback`).
		WithArgs(int64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	f := &model.Feedback{EventID: 1, SessionID: 101, UserID: 2, Rating: 5, Anonymous: true}
	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestFeedbackListBySession_DecodesTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM feedback WHERE session_id = \? ORDER BY created_at DESC, id DESC`).
		WithArgs(int64(101)).
		WillReturnRows(sqlmock.NewRows(feedbackColumnNames).
			AddRow(int64(1), int64(1), int64(101), int64(2), 4, "ok", []byte(`["engaging"]`), false, now))

	items, err := repo.ListBySession(context.Background(), 101)
	if err != nil {
		t.Fatalf("ListBySession error: %v", err)
	}
	if len(items) != 1 || len(items[0].Tags) != 1 || items[0].Tags[0] != "engaging" {
		t.Fatalf("unexpected feedback: %+v", items)
	}
}

func TestFeedbackListByEvent_BadTags(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery(`FROM feedback WHERE event_id = \?`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(feedbackColumnNames).
			AddRow(int64(1), int64(1), int64(101), int64(2), 4, "ok", []byte(`not-json`), false, time.Now()))

	if _, err := repo.ListByEvent(context.Background(), 1); err == nil {
		t.Fatal("expected decode error for malformed tags")
	}
}
