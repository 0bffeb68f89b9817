package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
	"tutorhub/pkg/validator"
)

const (
	hoursPrecision  = 4
	amountPrecision = 2
)

type BookingServiceImpl struct {
	tx            repository.Transactor
	repo          repository.BookingRepository
	courseRepo    repository.CourseRepository
	scheduleRepo  repository.ScheduleRepository
	tutors        TutorService
	conflicts     ConflictDetector
	conversations ConversationService
	logger        *zap.Logger
}

func NewBookingService(
	tx repository.Transactor,
	repo repository.BookingRepository,
	courseRepo repository.CourseRepository,
	scheduleRepo repository.ScheduleRepository,
	tutors TutorService,
	conflicts ConflictDetector,
	conversations ConversationService,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		tx:            tx,
		repo:          repo,
		courseRepo:    courseRepo,
		scheduleRepo:  scheduleRepo,
		tutors:        tutors,
		conflicts:     conflicts,
		conversations: conversations,
		logger:        logger,
	}
}

// Create проверяет заявку студента и атомарно сохраняет заявку вместе со всеми занятиями.
// Конфликт хотя бы одного занятия отклоняет всю пачку.
func (s *BookingServiceImpl) Create(ctx context.Context, actor domain.Actor, dto domain.CreateBookingDTO) (*domain.BookingRequest, error) {
	if !actor.IsStudent() {
		return nil, domain.NewForbidden(domain.CodeRoleNotAllowed, "бронировать занятия может только студент")
	}
	if len(dto.Sessions) == 0 {
		return nil, domain.NewInvalidInput(domain.CodeNoSessions, "не выбрано ни одного занятия")
	}

	slots := make([]domain.TimeSlot, 0, len(dto.Sessions))
	for _, requested := range dto.Sessions {
		slot, err := domain.NewTimeSlot(requested.Date, requested.StartTime, requested.EndTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	if _, err := s.tutors.GetByID(ctx, dto.TutorID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, dto.CourseID)
	if err != nil {
		s.logger.Error("ошибка получения курса", zap.Int64("courseID", dto.CourseID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения курса: %w", err)
	}
	if course == nil || course.TutorID != dto.TutorID {
		return nil, domain.NewNotFound(domain.CodeCourseNotFound, fmt.Sprintf("курс %d репетитора %d не найден", dto.CourseID, dto.TutorID))
	}
	if !course.IsActive {
		return nil, domain.NewInvalidInput(domain.CodeInactiveCourse, "курс недоступен для записи")
	}

	if !dto.Mode.IsValidSessionMode() {
		return nil, domain.NewInvalidInput(domain.CodeInvalidMode, fmt.Sprintf("некорректный режим занятия %q", dto.Mode))
	}
	if !course.TeachingMode.Accepts(dto.Mode) {
		return nil, domain.NewInvalidInput(domain.CodeIncompatibleMode,
			fmt.Sprintf("курс проводится в режиме %s, режим %s не поддерживается", course.TeachingMode, dto.Mode))
	}

	location, err := domain.NormalizeLocation(dto.Mode, dto.Location)
	if err != nil {
		return nil, err
	}

	request := &domain.BookingRequest{
		StudentID:  actor.UserID,
		TutorID:    dto.TutorID,
		CourseID:   course.ID,
		Mode:       dto.Mode,
		Location:   location,
		Note:       normalizeNote(dto.Note),
		HourlyRate: course.HourlyRate,
		Status:     domain.BookingStatusPending,
	}
	request.Sessions = priceSessions(slots, course.HourlyRate, dto.TutorID)
	request.TotalHours, request.TotalAmount = totals(slots, request.Sessions)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tx.LockTutor(ctx, dto.TutorID); err != nil {
			return err
		}

		conflicts, err := s.conflicts.FindConflicts(ctx, domain.ConflictSourceBookings, dto.TutorID, slots)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return domain.NewConflict("выбранное время пересекается с другими занятиями репетитора", conflicts)
		}

		if err := s.repo.CreateRequest(ctx, request); err != nil {
			return err
		}

		for i := range request.Sessions {
			request.Sessions[i].RequestID = request.ID
			if err := s.repo.CreateSession(ctx, &request.Sessions[i]); err != nil {
				return err
			}
			err := s.scheduleRepo.SetEntriesStatusForSlot(ctx, dto.TutorID, request.Sessions[i].Slot(),
				domain.EntryStatusAvailable, domain.EntryStatusBooked)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.fail(err, "ошибка создания бронирования", zap.Int64("studentID", actor.UserID), zap.Int64("tutorID", dto.TutorID))
	}

	s.logger.Info("создана заявка на бронирование",
		zap.Int64("bookingID", request.ID),
		zap.Int64("studentID", request.StudentID),
		zap.Int64("tutorID", request.TutorID),
		zap.Int("sessions", len(request.Sessions)),
		zap.String("totalAmount", request.TotalAmount.String()),
	)

	return request, nil
}

func priceSessions(slots []domain.TimeSlot, rate decimal.Decimal, tutorID int64) []domain.BookingSession {
	sessions := make([]domain.BookingSession, 0, len(slots))
	for _, slot := range slots {
		sessions = append(sessions, domain.BookingSession{
			TutorID:   tutorID,
			Date:      slot.Date,
			StartTime: slot.Start,
			EndTime:   slot.End,
			Hours:     slot.DurationHours().Round(hoursPrecision),
			Amount:    amountFor(rate, slot.DurationMinutes()),
			Status:    domain.SessionStatusPending,
		})
	}
	return sessions
}

// amountFor считает стоимость через минуты, чтобы дробные часы не накапливали ошибку округления.
func amountFor(rate decimal.Decimal, minutes int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(minutes))).Div(decimal.NewFromInt(60)).Round(amountPrecision)
}

func totals(slots []domain.TimeSlot, sessions []domain.BookingSession) (decimal.Decimal, decimal.Decimal) {
	minutes := 0
	for _, slot := range slots {
		minutes += slot.DurationMinutes()
	}

	amount := decimal.Zero
	for _, sess := range sessions {
		amount = amount.Add(sess.Amount)
	}

	hours := decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(hoursPrecision)
	return hours, amount
}

func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	cleaned := validator.NormalizeText(*note)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.BookingRequest, error) {
	request, err := s.repo.GetRequestByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения заявки", zap.Int64("bookingID", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения заявки: %w", err)
	}
	if request == nil {
		return nil, domain.NewNotFound(domain.CodeBookingNotFound, fmt.Sprintf("заявка %d не найдена", id))
	}

	if err := s.checkParty(ctx, actor, request); err != nil {
		return nil, err
	}

	if request.Sessions, err = s.repo.ListSessionsByRequest(ctx, request.ID); err != nil {
		s.logger.Error("ошибка получения занятий заявки", zap.Int64("bookingID", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения занятий заявки: %w", err)
	}

	return request, nil
}

// List returns the actor's side of the bookings: a student sees their own requests, a tutor the ones addressed to them.
func (s *BookingServiceImpl) List(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.BookingRequest, int, error) {
	filter.StudentID, filter.TutorID = nil, nil

	switch actor.Role {
	case domain.UserRoleStudent:
		filter.StudentID = PointerTo(actor.UserID)
	case domain.UserRoleTutor:
		tutor, err := s.tutors.ResolveActor(ctx, actor)
		if err != nil {
			return nil, 0, err
		}
		filter.TutorID = PointerTo(tutor.ID)
	default:
		return nil, 0, domain.NewForbidden(domain.CodeRoleNotAllowed, "список заявок доступен только участникам")
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, domain.NewInvalidInput(domain.CodeInvalidStatus, fmt.Sprintf("неизвестный статус заявки %q", *filter.Status))
	}
	filter.Normalize()

	requests, total, err := s.repo.ListRequests(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка заявок", zap.Int64("userID", actor.UserID), zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}

	return requests, total, nil
}

// SetBookingStatus переводит заявку в новый статус и синхронно выставляет его всем занятиям заявки.
func (s *BookingServiceImpl) SetBookingStatus(ctx context.Context, actor domain.Actor, id int64, status domain.BookingStatus) (*domain.BookingRequest, error) {
	var request *domain.BookingRequest

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.repo.LockRequest(ctx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.NewNotFound(domain.CodeBookingNotFound, fmt.Sprintf("заявка %d не найдена", id))
		}

		if err := s.checkParty(ctx, actor, request); err != nil {
			return err
		}
		if err := domain.CheckBookingTransition(actor.Role, request.Status, status); err != nil {
			return err
		}

		// Отмененные занятия не возвращаются к жизни: их слот мог уже занять другой студент.
		before, err := s.repo.ListSessionsByRequest(ctx, request.ID)
		if err != nil {
			return err
		}

		if err := s.repo.UpdateRequestStatus(ctx, request.ID, status); err != nil {
			return err
		}
		sessionStatus := status.SessionStatus()
		if err := s.repo.UpdateSessionsStatusByRequest(ctx, request.ID, sessionStatus); err != nil {
			return err
		}

		if sessionStatus == domain.SessionStatusCancelled {
			for _, sess := range before {
				if sess.Status == domain.SessionStatusCancelled {
					continue
				}
				if err := s.releaseEntries(ctx, sess); err != nil {
					return err
				}
			}
		}

		request.Status = status
		request.Sessions, err = s.repo.ListSessionsByRequest(ctx, request.ID)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "ошибка смены статуса заявки", zap.Int64("bookingID", id), zap.String("status", string(status)))
	}

	s.logger.Info("статус заявки изменен",
		zap.Int64("bookingID", request.ID),
		zap.String("status", string(status)),
		zap.String("role", string(actor.Role)),
	)

	if status == domain.BookingStatusConfirmed {
		if _, err := s.conversations.EnsureConversation(ctx, request.StudentID, request.TutorID); err != nil {
			s.logger.Error("не удалось создать диалог после подтверждения заявки",
				zap.Int64("bookingID", request.ID), zap.Error(err))
		}
	}

	return request, nil
}

// SetSessionStatus меняет статус одного занятия и пересчитывает статус родительской заявки.
func (s *BookingServiceImpl) SetSessionStatus(ctx context.Context, actor domain.Actor, sessionID int64, status domain.SessionStatus) (*domain.BookingSession, error) {
	var session *domain.BookingSession

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.repo.GetSessionByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.NewNotFound(domain.CodeSessionNotFound, fmt.Sprintf("занятие %d не найдено", sessionID))
		}

		request, err := s.repo.LockRequest(ctx, session.RequestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.NewNotFound(domain.CodeBookingNotFound, fmt.Sprintf("заявка %d не найдена", session.RequestID))
		}

		// Статусы занятий меняются только под блокировкой заявки, поэтому перечитываем занятие после нее.
		session, err = s.repo.GetSessionByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return domain.NewNotFound(domain.CodeSessionNotFound, fmt.Sprintf("занятие %d не найдено", sessionID))
		}

		if err := s.checkParty(ctx, actor, request); err != nil {
			return err
		}
		if err := domain.CheckSessionTransition(actor.Role, session.Status, status); err != nil {
			return err
		}

		if err := s.repo.UpdateSessionStatus(ctx, session.ID, status); err != nil {
			return err
		}
		session.Status = status

		if status == domain.SessionStatusCancelled {
			if err := s.releaseEntries(ctx, *session); err != nil {
				return err
			}
		}

		_, err = s.syncRequestStatus(ctx, request)
		return err
	})
	if err != nil {
		return nil, s.fail(err, "ошибка смены статуса занятия", zap.Int64("sessionID", sessionID), zap.String("status", string(status)))
	}

	s.logger.Info("статус занятия изменен",
		zap.Int64("sessionID", session.ID),
		zap.Int64("bookingID", session.RequestID),
		zap.String("status", string(status)),
	)

	return session, nil
}

// SyncBookingStatus повторно выводит статус заявки из статусов ее занятий; повторный вызов ничего не меняет.
func (s *BookingServiceImpl) SyncBookingStatus(ctx context.Context, requestID int64) (domain.BookingStatus, error) {
	var status domain.BookingStatus

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := s.repo.LockRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return domain.NewNotFound(domain.CodeBookingNotFound, fmt.Sprintf("заявка %d не найдена", requestID))
		}

		status, err = s.syncRequestStatus(ctx, request)
		return err
	})
	if err != nil {
		return "", s.fail(err, "ошибка пересчета статуса заявки", zap.Int64("bookingID", requestID))
	}

	return status, nil
}

func (s *BookingServiceImpl) syncRequestStatus(ctx context.Context, request *domain.BookingRequest) (domain.BookingStatus, error) {
	siblings, err := s.repo.ListSessionsByRequest(ctx, request.ID)
	if err != nil {
		return "", err
	}

	derived := domain.DeriveBookingStatus(request.Status, siblings)
	if derived == request.Status {
		return derived, nil
	}

	if err := s.repo.UpdateRequestStatus(ctx, request.ID, derived); err != nil {
		return "", err
	}

	s.logger.Info("статус заявки выведен из занятий",
		zap.Int64("bookingID", request.ID),
		zap.String("from", string(request.Status)),
		zap.String("to", string(derived)),
	)
	request.Status = derived

	return derived, nil
}

func (s *BookingServiceImpl) releaseEntries(ctx context.Context, session domain.BookingSession) error {
	return s.scheduleRepo.SetEntriesStatusForSlot(ctx, session.TutorID, session.Slot(),
		domain.EntryStatusBooked, domain.EntryStatusAvailable)
}

// checkParty допускает только студента заявки и репетитора, которому она адресована.
func (s *BookingServiceImpl) checkParty(ctx context.Context, actor domain.Actor, request *domain.BookingRequest) error {
	switch actor.Role {
	case domain.UserRoleStudent:
		if request.StudentID == actor.UserID {
			return nil
		}
	case domain.UserRoleTutor:
		tutor, err := s.tutors.ResolveActor(ctx, actor)
		if err != nil {
			if domain.IsKind(err, domain.KindInternal) {
				return err
			}
			break
		}
		if tutor.ID == request.TutorID {
			return nil
		}
	}

	return domain.NewForbidden(domain.CodeNotAParty, "пользователь не является участником бронирования")
}

// fail логирует ошибку по ее виду и оборачивает внутренние ошибки хранилища.
func (s *BookingServiceImpl) fail(err error, msg string, fields ...zap.Field) error {
	if domain.IsKind(err, domain.KindInternal) {
		s.logger.Error(msg, append(fields, zap.Error(err))...)
		return fmt.Errorf("%s: %w", msg, err)
	}
	s.logger.Warn(msg, append(fields, zap.Error(err))...)
	return err
}
