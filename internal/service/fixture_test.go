package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tutorhub/config"
	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
	"tutorhub/pkg/auth"
)

const (
	studentUserID      = 100
	otherStudentUserID = 101
	adminUserID        = 1
	tutorUserID        = 200
	otherTutorUserID   = 201

	tutorID      = 10
	otherTutorID = 11

	courseBoth       = 50
	courseOnlineOnly = 51
	courseInactive   = 52
	courseForeign    = 53
)

var (
	student      = domain.Actor{UserID: studentUserID, Role: domain.UserRoleStudent}
	otherStudent = domain.Actor{UserID: otherStudentUserID, Role: domain.UserRoleStudent}
	tutor        = domain.Actor{UserID: tutorUserID, Role: domain.UserRoleTutor}
	otherTutor   = domain.Actor{UserID: otherTutorUserID, Role: domain.UserRoleTutor}
	admin        = domain.Actor{UserID: adminUserID, Role: domain.UserRoleAdmin}
)

type fixture struct {
	ctx   context.Context
	store *memStore
	svc   *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	store.data.nextID = 1000
	store.data.tutors[tutorID] = domain.TutorProfile{ID: tutorID, UserID: tutorUserID, Rating: decimal.Zero}
	store.data.tutors[otherTutorID] = domain.TutorProfile{ID: otherTutorID, UserID: otherTutorUserID, Rating: decimal.Zero}

	rate := decimal.NewFromInt(200000)
	store.data.courses[courseBoth] = domain.Course{ID: courseBoth, TutorID: tutorID, Title: "Математика", HourlyRate: rate, TeachingMode: domain.TeachingModeBoth, IsActive: true}
	store.data.courses[courseOnlineOnly] = domain.Course{ID: courseOnlineOnly, TutorID: tutorID, Title: "Английский", HourlyRate: rate, TeachingMode: domain.TeachingModeOnline, IsActive: true}
	store.data.courses[courseInactive] = domain.Course{ID: courseInactive, TutorID: tutorID, Title: "Физика", HourlyRate: rate, TeachingMode: domain.TeachingModeBoth, IsActive: false}
	store.data.courses[courseForeign] = domain.Course{ID: courseForeign, TutorID: otherTutorID, Title: "Химия", HourlyRate: rate, TeachingMode: domain.TeachingModeBoth, IsActive: true}

	return &fixture{ctx: context.Background(), store: store, svc: newTestServices(store.repos())}
}

func newTestServices(repos *repository.Repositories) *Services {
	return NewServices(Deps{
		Repos:  repos,
		Logger: zap.NewNop(),
		Config: &config.Config{Scheduling: config.SchedulingConfig{MaxRuleDays: 366}},
		Tokens: auth.NewTokenManager("test-signing-key"),
	})
}

// withBookings пересобирает сервисы поверх другой реализации BookingRepository.
func (f *fixture) withBookings(bookings repository.BookingRepository) {
	repos := f.store.repos()
	repos.Booking = bookings
	f.svc = newTestServices(repos)
}

func slotDTO(date, start, end string) domain.SessionSlotDTO {
	return domain.SessionSlotDTO{
		Date:      domain.MustParseDate(date),
		StartTime: domain.MustParseClock(start),
		EndTime:   domain.MustParseClock(end),
	}
}

func onlineBooking(slots ...domain.SessionSlotDTO) domain.CreateBookingDTO {
	return domain.CreateBookingDTO{
		TutorID:  tutorID,
		CourseID: courseBoth,
		Mode:     domain.TeachingModeOnline,
		Sessions: slots,
	}
}

func (f *fixture) book(t *testing.T, slots ...domain.SessionSlotDTO) *domain.BookingRequest {
	t.Helper()
	req, err := f.svc.Booking.Create(f.ctx, student, onlineBooking(slots...))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return req
}

func (f *fixture) requestCount() int {
	return f.store.count(func(d memData) int { return len(d.requests) })
}

func (f *fixture) sessionCount() int {
	return f.store.count(func(d memData) int { return len(d.sessions) })
}

func (f *fixture) entry(id int64) domain.ScheduleEntry {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.data.entries[id]
}

func (f *fixture) session(id int64) domain.BookingSession {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.data.sessions[id]
}

func (f *fixture) request(id int64) domain.BookingRequest {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.data.requests[id]
}

func assertCode(t *testing.T, err error, kind domain.ErrorKind, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s/%s error, got nil", kind, code)
	}
	if got := domain.KindOf(err); got != kind {
		t.Fatalf("error kind = %s, want %s (err: %v)", got, kind, err)
	}
	if code == "" {
		return
	}
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *domain.Error, got %T", err)
	}
	if domainErr.Code != code {
		t.Errorf("error code = %s, want %s", domainErr.Code, code)
	}
}

func asConflict(t *testing.T, err error) *domain.ConflictError {
	t.Helper()
	var conflictErr *domain.ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected *domain.ConflictError, got %T (%v)", err, err)
	}
	return conflictErr
}
