package service

import (
	"context"
	"sort"
	"sync"

	"github.com/realtimefeedback/feedback-api/internal/model"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

// In-memory stores mirroring the repository contracts, including the
// uniqueness rules the database enforces.

type stubUsers struct {
	mu     sync.Mutex
	byID   map[int64]*model.User
	nextID int64
	err    error // returned by every call when set
}

func newStubUsers() *stubUsers {
	return &stubUsers{byID: map[int64]*model.User{}}
}

func (s *stubUsers) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *stubUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	switch err {
	case nil:
		return true, nil
	case repository.ErrUserNotFound:
		return false, nil
	}
	return false, err
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUsers) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	u, ok := s.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Password = hash
	return nil
}

// add inserts a user directly, bypassing hashing.
func (s *stubUsers) add(name, email, role string) *model.User {
	u := &model.User{Name: name, Email: email, Role: role, Password: "unused"}
	_ = s.Create(context.Background(), u)
	return u
}

type stubEvents struct {
	mu        sync.Mutex
	byID      map[int64]*model.Event
	attendees map[[2]int64]bool
	nextID    int64
	err       error
}

func newStubEvents() *stubEvents {
	return &stubEvents{byID: map[int64]*model.Event{}, attendees: map[[2]int64]bool{}}
}

func (s *stubEvents) codeTaken(code string, except int64) bool {
	for id, e := range s.byID {
		if id != except && e.AccessCode == code {
			return true
		}
	}
	return false
}

func (s *stubEvents) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.codeTaken(e.AccessCode, 0) {
		return repository.ErrDuplicateAccessCode
	}
	s.nextID++
	e.ID = s.nextID
	cp := *e
	s.byID[e.ID] = &cp
	return nil
}

func (s *stubEvents) GetByID(_ context.Context, id int64) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	e, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *stubEvents) GetByAccessCode(_ context.Context, code string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, e := range s.byID {
		if e.AccessCode == code {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func (s *stubEvents) List(_ context.Context, organizerID int64) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []model.Event{}
	for _, e := range s.byID {
		if organizerID == 0 || e.OrganizerID == organizerID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubEvents) Update(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	cp := *e
	s.byID[e.ID] = &cp
	return nil
}

func (s *stubEvents) UpdateAccessCode(_ context.Context, id int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	e, ok := s.byID[id]
	if !ok {
		return repository.ErrEventNotFound
	}
	if s.codeTaken(code, id) {
		return repository.ErrDuplicateAccessCode
	}
	e.AccessCode = code
	return nil
}

func (s *stubEvents) AddAttendee(_ context.Context, eventID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	key := [2]int64{eventID, userID}
	if s.attendees[key] {
		return repository.ErrAlreadyJoined
	}
	s.attendees[key] = true
	return nil
}

func (s *stubEvents) IsAttendee(_ context.Context, eventID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return false, s.err
	}
	return s.attendees[[2]int64{eventID, userID}], nil
}

type stubSessions struct {
	mu     sync.Mutex
	byID   map[int64]*model.Session
	nextID int64
}

func newStubSessions() *stubSessions {
	return &stubSessions{byID: map[int64]*model.Session{}}
}

func (s *stubSessions) Create(_ context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sess.ID = s.nextID
	cp := *sess
	s.byID[sess.ID] = &cp
	return nil
}

func (s *stubSessions) GetByID(_ context.Context, id int64) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *stubSessions) ListByEvent(_ context.Context, eventID int64) ([]model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Session{}
	for _, sess := range s.byID {
		if sess.EventID == eventID {
			out = append(out, *sess)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *stubSessions) UpdateStatus(_ context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	sess.Status = status
	return nil
}

type stubFeedback struct {
	mu    sync.Mutex
	items []model.Feedback
}

func (s *stubFeedback) Create(_ context.Context, f *model.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = int64(len(s.items) + 1)
	s.items = append(s.items, *f)
	return nil
}

func (s *stubFeedback) ListByEvent(_ context.Context, eventID int64) ([]model.Feedback, error) {
	return s.filter(func(f model.Feedback) bool { return f.EventID == eventID }), nil
}

func (s *stubFeedback) ListBySession(_ context.Context, sessionID int64) ([]model.Feedback, error) {
	return s.filter(func(f model.Feedback) bool { return f.SessionID == sessionID }), nil
}

func (s *stubFeedback) filter(keep func(model.Feedback) bool) []model.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Feedback{}
	for _, f := range s.items {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

type stubQuestions struct {
	mu     sync.Mutex
	byID   map[int64]*model.Question
	nextID int64
}

func newStubQuestions() *stubQuestions {
	return &stubQuestions{byID: map[int64]*model.Question{}}
}

func (s *stubQuestions) Create(_ context.Context, q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	q.ID = s.nextID
	cp := *q
	s.byID[q.ID] = &cp
	return nil
}

func (s *stubQuestions) GetByID(_ context.Context, id int64) (*model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	cp := *q
	return &cp, nil
}

func (s *stubQuestions) ListByEvent(_ context.Context, eventID int64) ([]model.Question, error) {
	return s.filter(func(q *model.Question) bool { return q.EventID == eventID }), nil
}

func (s *stubQuestions) ListBySession(_ context.Context, sessionID int64) ([]model.Question, error) {
	return s.filter(func(q *model.Question) bool { return q.SessionID == sessionID }), nil
}

func (s *stubQuestions) filter(keep func(*model.Question) bool) []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Question{}
	for _, q := range s.byID {
		if keep(q) {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Upvotes != out[j].Upvotes {
			return out[i].Upvotes > out[j].Upvotes
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *stubQuestions) Upvote(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.byID[id]
	if !ok {
		return repository.ErrQuestionNotFound
	}
	q.Upvotes++
	return nil
}

func (s *stubQuestions) MarkAnswered(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.byID[id]
	if !ok {
		return repository.ErrQuestionNotFound
	}
	q.Answered = true
	return nil
}
