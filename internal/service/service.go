package service

import (
	"context"

	"go.uber.org/zap"

	"tutorhub/config"
	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
	"tutorhub/pkg/auth"
)

type Deps struct {
	Repos  *repository.Repositories
	Logger *zap.Logger
	Config *config.Config
	Tokens *auth.TokenManager
}

type Services struct {
	Auth         AuthService
	Tutor        TutorService
	Course       CourseService
	Conflict     ConflictDetector
	Availability AvailabilityService
	Booking      BookingService
	SessionNote  SessionNoteService
	Conversation ConversationService
}

func NewServices(deps Deps) *Services {
	tutors := NewTutorService(deps.Repos.Tutor, deps.Logger)
	conflicts := NewConflictDetector(deps.Repos.Schedule, deps.Repos.Booking)
	conversations := NewConversationService(deps.Repos.Conversation, deps.Logger)

	return &Services{
		Auth:         NewAuthService(deps.Tokens, deps.Logger),
		Tutor:        tutors,
		Course:       NewCourseService(deps.Repos.Course, tutors, deps.Logger),
		Conflict:     conflicts,
		Availability: NewAvailabilityService(deps.Repos.Tx, deps.Repos.Schedule, deps.Repos.Booking, deps.Repos.Course, tutors, conflicts, deps.Config.Scheduling, deps.Logger),
		Booking:      NewBookingService(deps.Repos.Tx, deps.Repos.Booking, deps.Repos.Course, deps.Repos.Schedule, tutors, conflicts, conversations, deps.Logger),
		SessionNote:  NewSessionNoteService(deps.Repos.Tx, deps.Repos.SessionNote, deps.Repos.Booking, deps.Repos.Tutor, tutors, deps.Logger),
		Conversation: conversations,
	}
}

type AuthService interface {
	ParseToken(ctx context.Context, token string) (domain.Actor, error)
}

type TutorService interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	ResolveActor(ctx context.Context, actor domain.Actor) (*domain.TutorProfile, error)
}

type CourseService interface {
	ListByTutor(ctx context.Context, tutorID int64) ([]domain.Course, error)
}

type ConflictDetector interface {
	HasConflict(ctx context.Context, source domain.ConflictSource, tutorID int64, slot domain.TimeSlot) (bool, error)
	FindConflicts(ctx context.Context, source domain.ConflictSource, tutorID int64, slots []domain.TimeSlot) ([]domain.SlotConflict, error)
}

type AvailabilityService interface {
	ExpandAvailability(ctx context.Context, actor domain.Actor, dto domain.CreateAvailabilityDTO) (*domain.ExpansionResult, error)
	ListSchedule(ctx context.Context, tutorID int64, filter domain.ScheduleFilter) ([]domain.ScheduleEntry, error)
	ListOpenSlots(ctx context.Context, tutorID int64, from, to domain.Date) ([]domain.ScheduleEntry, error)
	CancelEntry(ctx context.Context, actor domain.Actor, entryID int64) (*domain.ScheduleEntry, error)
	DeleteEntry(ctx context.Context, actor domain.Actor, entryID int64) error
}

type BookingService interface {
	Create(ctx context.Context, actor domain.Actor, dto domain.CreateBookingDTO) (*domain.BookingRequest, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.BookingRequest, error)
	List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.BookingRequest, int, error)
	SetBookingStatus(ctx context.Context, actor domain.Actor, id int64, status domain.BookingStatus) (*domain.BookingRequest, error)
	SetSessionStatus(ctx context.Context, actor domain.Actor, sessionID int64, status domain.SessionStatus) (*domain.BookingSession, error)
	SyncBookingStatus(ctx context.Context, requestID int64) (domain.BookingStatus, error)
}

type SessionNoteService interface {
	AddSessionNote(ctx context.Context, actor domain.Actor, sessionID int64, dto domain.SessionNoteDTO) (*domain.SessionNote, error)
}

type ConversationService interface {
	EnsureConversation(ctx context.Context, studentID, tutorID int64) (*domain.Conversation, error)
}

func PointerTo[T any](v T) *T {
	return &v
}
