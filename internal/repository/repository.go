package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"tutorhub/internal/domain"
)

type Repositories struct {
	Tx           Transactor
	Tutor        TutorRepository
	Course       CourseRepository
	Schedule     ScheduleRepository
	Booking      BookingRepository
	SessionNote  SessionNoteRepository
	Conversation ConversationRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Tx:           NewTransactor(db),
		Tutor:        NewTutorRepository(db),
		Course:       NewCourseRepository(db),
		Schedule:     NewScheduleRepository(db),
		Booking:      NewBookingRepository(db),
		SessionNote:  NewSessionNoteRepository(db),
		Conversation: NewConversationRepository(db),
	}
}

// Transactor runs fn inside one database transaction; repositories called with
// the ctx passed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	LockTutor(ctx context.Context, tutorID int64) error
}

type TutorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error)
	UpdateRating(ctx context.Context, id int64, rating decimal.Decimal, ratedSessions int) error
}

type CourseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]domain.Course, error)
}

type ScheduleRepository interface {
	CreateRule(ctx context.Context, rule domain.AvailabilityRule) (int64, error)
	CreateEntry(ctx context.Context, entry *domain.ScheduleEntry) error
	GetEntryByID(ctx context.Context, id int64) (*domain.ScheduleEntry, error)
	FindActiveEntriesOnDate(ctx context.Context, tutorID int64, date domain.Date) ([]domain.ScheduleEntry, error)
	ListEntries(ctx context.Context, tutorID int64, filter domain.ScheduleFilter) ([]domain.ScheduleEntry, error)
	UpdateEntryStatus(ctx context.Context, id int64, status domain.EntryStatus) error
	SetEntriesStatusForSlot(ctx context.Context, tutorID int64, slot domain.TimeSlot, from, to domain.EntryStatus) error
	DeleteEntry(ctx context.Context, id int64) error
}

type BookingRepository interface {
	CreateRequest(ctx context.Context, request *domain.BookingRequest) error
	CreateSession(ctx context.Context, session *domain.BookingSession) error
	GetRequestByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	LockRequest(ctx context.Context, id int64) (*domain.BookingRequest, error)
	GetSessionByID(ctx context.Context, id int64) (*domain.BookingSession, error)
	ListSessionsByRequest(ctx context.Context, requestID int64) ([]domain.BookingSession, error)
	FindActiveSessionsOnDate(ctx context.Context, tutorID int64, date domain.Date) ([]domain.BookingSession, error)
	FindActiveSessionsInRange(ctx context.Context, tutorID int64, from, to domain.Date) ([]domain.BookingSession, error)
	ListRequests(ctx context.Context, filter domain.BookingFilter) ([]domain.BookingRequest, int, error)
	UpdateRequestStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdateSessionStatus(ctx context.Context, id int64, status domain.SessionStatus) error
	UpdateSessionsStatusByRequest(ctx context.Context, requestID int64, status domain.SessionStatus) error
}

type SessionNoteRepository interface {
	GetBySessionID(ctx context.Context, sessionID int64) (*domain.SessionNote, error)
	Upsert(ctx context.Context, note *domain.SessionNote) error
	RatingStatsForTutor(ctx context.Context, tutorID int64) (decimal.Decimal, int, error)
}

type ConversationRepository interface {
	GetByParticipants(ctx context.Context, studentID, tutorID int64) (*domain.Conversation, error)
	Create(ctx context.Context, studentID, tutorID int64) (*domain.Conversation, error)
}
