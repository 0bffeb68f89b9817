package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

// ── In-memory store shared by all fake repositories ──

type memData struct {
	tutors        map[int64]domain.TutorProfile
	courses       map[int64]domain.Course
	rules         map[int64]domain.AvailabilityRule
	entries       map[int64]domain.ScheduleEntry
	requests      map[int64]domain.BookingRequest
	sessions      map[int64]domain.BookingSession
	notes         map[int64]domain.SessionNote
	conversations map[[2]int64]domain.Conversation
	nextID        int64
}

func (d memData) clone() memData {
	c := memData{
		tutors:        make(map[int64]domain.TutorProfile, len(d.tutors)),
		courses:       make(map[int64]domain.Course, len(d.courses)),
		rules:         make(map[int64]domain.AvailabilityRule, len(d.rules)),
		entries:       make(map[int64]domain.ScheduleEntry, len(d.entries)),
		requests:      make(map[int64]domain.BookingRequest, len(d.requests)),
		sessions:      make(map[int64]domain.BookingSession, len(d.sessions)),
		notes:         make(map[int64]domain.SessionNote, len(d.notes)),
		conversations: make(map[[2]int64]domain.Conversation, len(d.conversations)),
		nextID:        d.nextID,
	}
	for k, v := range d.tutors {
		c.tutors[k] = v
	}
	for k, v := range d.courses {
		c.courses[k] = v
	}
	for k, v := range d.rules {
		c.rules[k] = v
	}
	for k, v := range d.entries {
		c.entries[k] = v
	}
	for k, v := range d.requests {
		c.requests[k] = v
	}
	for k, v := range d.sessions {
		c.sessions[k] = v
	}
	for k, v := range d.notes {
		c.notes[k] = v
	}
	for k, v := range d.conversations {
		c.conversations[k] = v
	}
	return c
}

type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memData

	failCreateSession error
	failConversation  error
	locks             int
}

func newMemStore() *memStore {
	return &memStore{data: memData{}.clone()}
}

func (m *memStore) id() int64 {
	m.data.nextID++
	return m.data.nextID
}

func (m *memStore) repos() *repository.Repositories {
	return &repository.Repositories{
		Tx:           memTx{m},
		Tutor:        memTutors{m},
		Course:       memCourses{m},
		Schedule:     memSchedule{m},
		Booking:      memBookings{m},
		SessionNote:  memNotes{m},
		Conversation: memConversations{m},
	}
}

func (m *memStore) count(fn func(d memData) int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.data)
}

// ── Transactor ──

type memTxKey struct{}

type memTx struct{ m *memStore }

// WithinTransaction serialises transactions and restores the snapshot when fn fails.
func (t memTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}

	t.m.txMu.Lock()
	defer t.m.txMu.Unlock()

	t.m.mu.Lock()
	snapshot := t.m.data.clone()
	t.m.mu.Unlock()

	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		t.m.mu.Lock()
		t.m.data = snapshot
		t.m.mu.Unlock()
		return err
	}
	return nil
}

func (t memTx) LockTutor(ctx context.Context, _ int64) error {
	if ctx.Value(memTxKey{}) == nil {
		return errors.New("LockTutor called outside of a transaction")
	}
	t.m.mu.Lock()
	t.m.locks++
	t.m.mu.Unlock()
	return nil
}

// ── TutorRepository ──

type memTutors struct{ m *memStore }

func (r memTutors) GetByID(_ context.Context, id int64) (*domain.TutorProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if t, ok := r.m.data.tutors[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r memTutors) GetByUserID(_ context.Context, userID int64) (*domain.TutorProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, t := range r.m.data.tutors {
		if t.UserID == userID {
			return &t, nil
		}
	}
	return nil, nil
}

func (r memTutors) UpdateRating(_ context.Context, id int64, rating decimal.Decimal, rated int) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t := r.m.data.tutors[id]
	t.Rating = rating
	t.RatedSessions = rated
	r.m.data.tutors[id] = t
	return nil
}

// ── CourseRepository ──

type memCourses struct{ m *memStore }

func (r memCourses) GetByID(_ context.Context, id int64) (*domain.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if c, ok := r.m.data.courses[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memCourses) ListByTutor(_ context.Context, tutorID int64) ([]domain.Course, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.Course
	for _, c := range r.m.data.courses {
		if c.TutorID == tutorID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── ScheduleRepository ──

type memSchedule struct{ m *memStore }

func (r memSchedule) CreateRule(_ context.Context, rule domain.AvailabilityRule) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rule.ID = r.m.id()
	r.m.data.rules[rule.ID] = rule
	return rule.ID, nil
}

func (r memSchedule) CreateEntry(_ context.Context, entry *domain.ScheduleEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	entry.ID = r.m.id()
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	r.m.data.entries[entry.ID] = *entry
	return nil
}

func (r memSchedule) GetEntryByID(_ context.Context, id int64) (*domain.ScheduleEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if e, ok := r.m.data.entries[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r memSchedule) FindActiveEntriesOnDate(_ context.Context, tutorID int64, date domain.Date) ([]domain.ScheduleEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.ScheduleEntry
	for _, e := range r.m.data.entries {
		if e.TutorID == tutorID && e.Date.Equal(date) && e.Status != domain.EntryStatusCancelled {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (r memSchedule) ListEntries(_ context.Context, tutorID int64, filter domain.ScheduleFilter) ([]domain.ScheduleEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.ScheduleEntry
	for _, e := range r.m.data.entries {
		if e.TutorID != tutorID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.Date.After(*filter.To) {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func sortEntries(entries []domain.ScheduleEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].StartTime < entries[j].StartTime
	})
}

func (r memSchedule) UpdateEntryStatus(_ context.Context, id int64, status domain.EntryStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	e := r.m.data.entries[id]
	e.Status = status
	r.m.data.entries[id] = e
	return nil
}

func (r memSchedule) SetEntriesStatusForSlot(_ context.Context, tutorID int64, slot domain.TimeSlot, from, to domain.EntryStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, e := range r.m.data.entries {
		if e.TutorID == tutorID && sameSlot(e.Slot(), slot) && e.Status == from {
			e.Status = to
			r.m.data.entries[id] = e
		}
	}
	return nil
}

func (r memSchedule) DeleteEntry(_ context.Context, id int64) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.data.entries, id)
	return nil
}

// ── BookingRepository ──

type memBookings struct{ m *memStore }

func (r memBookings) CreateRequest(_ context.Context, request *domain.BookingRequest) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	request.ID = r.m.id()
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt
	stored := *request
	stored.Sessions = nil
	r.m.data.requests[request.ID] = stored
	return nil
}

func (r memBookings) CreateSession(_ context.Context, session *domain.BookingSession) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failCreateSession != nil {
		return r.m.failCreateSession
	}
	session.ID = r.m.id()
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	r.m.data.sessions[session.ID] = *session
	return nil
}

func (r memBookings) GetRequestByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if req, ok := r.m.data.requests[id]; ok {
		return &req, nil
	}
	return nil, nil
}

func (r memBookings) LockRequest(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.GetRequestByID(ctx, id)
}

func (r memBookings) GetSessionByID(_ context.Context, id int64) (*domain.BookingSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.data.sessions[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r memBookings) ListSessionsByRequest(_ context.Context, requestID int64) ([]domain.BookingSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.BookingSession
	for _, s := range r.m.data.sessions {
		if s.RequestID == requestID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memBookings) FindActiveSessionsOnDate(ctx context.Context, tutorID int64, date domain.Date) ([]domain.BookingSession, error) {
	return r.FindActiveSessionsInRange(ctx, tutorID, date, date)
}

func (r memBookings) FindActiveSessionsInRange(_ context.Context, tutorID int64, from, to domain.Date) ([]domain.BookingSession, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.BookingSession
	for _, s := range r.m.data.sessions {
		if s.TutorID != tutorID || s.Status == domain.SessionStatusCancelled {
			continue
		}
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memBookings) ListRequests(_ context.Context, filter domain.BookingFilter) ([]domain.BookingRequest, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []domain.BookingRequest
	for _, req := range r.m.data.requests {
		if filter.StudentID != nil && req.StudentID != *filter.StudentID {
			continue
		}
		if filter.TutorID != nil && req.TutorID != *filter.TutorID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := len(out)
	if filter.Offset >= len(out) {
		return nil, total, nil
	}
	out = out[filter.Offset:]
	if filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r memBookings) UpdateRequestStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req := r.m.data.requests[id]
	req.Status = status
	r.m.data.requests[id] = req
	return nil
}

func (r memBookings) UpdateSessionStatus(_ context.Context, id int64, status domain.SessionStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s := r.m.data.sessions[id]
	s.Status = status
	r.m.data.sessions[id] = s
	return nil
}

func (r memBookings) UpdateSessionsStatusByRequest(_ context.Context, requestID int64, status domain.SessionStatus) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, s := range r.m.data.sessions {
		if s.RequestID == requestID && s.Status != domain.SessionStatusCancelled {
			s.Status = status
			r.m.data.sessions[id] = s
		}
	}
	return nil
}

// ── SessionNoteRepository ──

type memNotes struct{ m *memStore }

func (r memNotes) GetBySessionID(_ context.Context, sessionID int64) (*domain.SessionNote, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if n, ok := r.m.data.notes[sessionID]; ok {
		return &n, nil
	}
	return nil, nil
}

func (r memNotes) Upsert(_ context.Context, note *domain.SessionNote) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if note.ID == 0 {
		note.ID = r.m.id()
		note.CreatedAt = time.Now()
	}
	note.UpdatedAt = time.Now()
	r.m.data.notes[note.SessionID] = *note
	return nil
}

func (r memNotes) RatingStatsForTutor(_ context.Context, tutorID int64) (decimal.Decimal, int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	sum, count := 0, 0
	for sessionID, n := range r.m.data.notes {
		if n.StudentRating == nil || r.m.data.sessions[sessionID].TutorID != tutorID {
			continue
		}
		sum += *n.StudentRating
		count++
	}
	if count == 0 {
		return decimal.Zero, 0, nil
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(count))).Round(2), count, nil
}

// ── ConversationRepository ──

type memConversations struct{ m *memStore }

func (r memConversations) GetByParticipants(_ context.Context, studentID, tutorID int64) (*domain.Conversation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failConversation != nil {
		return nil, r.m.failConversation
	}
	if c, ok := r.m.data.conversations[[2]int64{studentID, tutorID}]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r memConversations) Create(_ context.Context, studentID, tutorID int64) (*domain.Conversation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	key := [2]int64{studentID, tutorID}
	if c, ok := r.m.data.conversations[key]; ok {
		return &c, nil
	}
	c := domain.Conversation{ID: r.m.id(), StudentID: studentID, TutorID: tutorID, CreatedAt: time.Now()}
	r.m.data.conversations[key] = c
	return &c, nil
}

func sameSlot(a, b domain.TimeSlot) bool {
	return a.Date.Equal(b.Date) && a.Start == b.Start && a.End == b.End
}
