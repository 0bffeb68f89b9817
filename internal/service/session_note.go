package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
	"tutorhub/pkg/validator"
)

type SessionNoteServiceImpl struct {
	tx          repository.Transactor
	repo        repository.SessionNoteRepository
	bookingRepo repository.BookingRepository
	tutorRepo   repository.TutorRepository
	tutors      TutorService
	logger      *zap.Logger
}

func NewSessionNoteService(
	tx repository.Transactor,
	repo repository.SessionNoteRepository,
	bookingRepo repository.BookingRepository,
	tutorRepo repository.TutorRepository,
	tutors TutorService,
	logger *zap.Logger,
) *SessionNoteServiceImpl {
	return &SessionNoteServiceImpl{
		tx:          tx,
		repo:        repo,
		bookingRepo: bookingRepo,
		tutorRepo:   tutorRepo,
		tutors:      tutors,
		logger:      logger,
	}
}

// AddSessionNote создает или дополняет заметку к занятию. Репетитор пишет заметки,
// студент ставит оценку и отзыв только после завершения занятия.
func (s *SessionNoteServiceImpl) AddSessionNote(ctx context.Context, actor domain.Actor, sessionID int64, dto domain.SessionNoteDTO) (*domain.SessionNote, error) {
	if !dto.HasTutorFields() && !dto.HasStudentFields() {
		return nil, domain.NewInvalidInput(domain.CodeEmptyNote, "заметка не содержит данных")
	}
	if dto.StudentRating != nil && (*dto.StudentRating < domain.MinRating || *dto.StudentRating > domain.MaxRating) {
		return nil, domain.NewInvalidInput(domain.CodeInvalidRating,
			fmt.Sprintf("оценка должна быть от %d до %d", domain.MinRating, domain.MaxRating))
	}
	dto.TutorNotes = cleanText(dto.TutorNotes)
	dto.StudentFeedback = cleanText(dto.StudentFeedback)

	var note domain.SessionNote

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		session, err := s.bookingRepo.GetSessionByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.NewNotFound(domain.CodeSessionNotFound, fmt.Sprintf("занятие %d не найдено", sessionID))
		}

		request, err := s.bookingRepo.GetRequestByID(ctx, session.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.NewNotFound(domain.CodeBookingNotFound, fmt.Sprintf("заявка %d не найдена", session.RequestID))
		}

		if err := s.authorize(ctx, actor, request, session, dto); err != nil {
			return err
		}

		existing, err := s.repo.GetBySessionID(ctx, session.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			existing = &domain.SessionNote{SessionID: session.ID}
		}

		note = existing.Merge(dto)
		if err := s.repo.Upsert(ctx, &note); err != nil {
			return err
		}

		if dto.StudentRating != nil {
			return s.refreshTutorRating(ctx, session.TutorID)
		}
		return nil
	})
	if err != nil {
		if domain.IsKind(err, domain.KindInternal) {
			s.logger.Error("ошибка сохранения заметки к занятию", zap.Int64("sessionID", sessionID), zap.Error(err))
			return nil, fmt.Errorf("ошибка сохранения заметки к занятию: %w", err)
		}
		s.logger.Warn("заметка к занятию отклонена", zap.Int64("sessionID", sessionID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("заметка к занятию сохранена", zap.Int64("sessionID", sessionID), zap.String("role", string(actor.Role)))
	return &note, nil
}

func (s *SessionNoteServiceImpl) authorize(ctx context.Context, actor domain.Actor, request *domain.BookingRequest, session *domain.BookingSession, dto domain.SessionNoteDTO) error {
	switch actor.Role {
	case domain.UserRoleStudent:
		if request.StudentID != actor.UserID {
			return domain.NewForbidden(domain.CodeNotAParty, "пользователь не является участником бронирования")
		}
		if dto.HasTutorFields() {
			return domain.NewForbidden(domain.CodeRoleNotAllowed, "заметки репетитора может писать только репетитор")
		}
		if session.Status != domain.SessionStatusCompleted {
			return domain.NewInvalidInput(domain.CodeNotCompleted, "оценить можно только завершенное занятие")
		}
		return nil
	case domain.UserRoleTutor:
		tutor, err := s.tutors.ResolveActor(ctx, actor)
		if err != nil && domain.IsKind(err, domain.KindInternal) {
			return err
		}
		if tutor == nil || tutor.ID != request.TutorID {
			return domain.NewForbidden(domain.CodeNotAParty, "пользователь не является участником бронирования")
		}
		if dto.HasStudentFields() {
			return domain.NewForbidden(domain.CodeRoleNotAllowed, "оценку и отзыв оставляет только студент")
		}
		return nil
	default:
		return domain.NewForbidden(domain.CodeNotAParty, "пользователь не является участником бронирования")
	}
}

func (s *SessionNoteServiceImpl) refreshTutorRating(ctx context.Context, tutorID int64) error {
	rating, count, err := s.repo.RatingStatsForTutor(ctx, tutorID)
	if err != nil {
		return err
	}
	return s.tutorRepo.UpdateRating(ctx, tutorID, rating.Round(2), count)
}

func cleanText(v *string) *string {
	if v == nil {
		return nil
	}
	cleaned := validator.NormalizeText(*v)
	return &cleaned
}
