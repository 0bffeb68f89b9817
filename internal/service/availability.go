package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/config"
	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

type AvailabilityServiceImpl struct {
	tx           repository.Transactor
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository
	courseRepo   repository.CourseRepository
	tutors       TutorService
	conflicts    ConflictDetector
	cfg          config.SchedulingConfig
	logger       *zap.Logger
}

func NewAvailabilityService(
	tx repository.Transactor,
	scheduleRepo repository.ScheduleRepository,
	bookingRepo repository.BookingRepository,
	courseRepo repository.CourseRepository,
	tutors TutorService,
	conflicts ConflictDetector,
	cfg config.SchedulingConfig,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		tx:           tx,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		courseRepo:   courseRepo,
		tutors:       tutors,
		conflicts:    conflicts,
		cfg:          cfg,
		logger:       logger,
	}
}

// ExpandAvailability сохраняет правило и разворачивает его в записи расписания.
// Повторяющееся правило пропускает конфликтующие даты, разовое при конфликте отклоняется целиком.
func (s *AvailabilityServiceImpl) ExpandAvailability(ctx context.Context, actor domain.Actor, dto domain.CreateAvailabilityDTO) (*domain.ExpansionResult, error) {
	tutor, err := s.tutors.ResolveActor(ctx, actor)
	if err != nil {
		return nil, err
	}

	rule, err := dto.BuildRule(tutor.ID, s.cfg.MaxRuleDays)
	if err != nil {
		return nil, err
	}

	if rule.CourseID != nil {
		if err := s.checkCourse(ctx, tutor.ID, *rule.CourseID, rule.Mode); err != nil {
			return nil, err
		}
	}

	result := &domain.ExpansionResult{Rule: rule, Created: []domain.ScheduleEntry{}}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.tx.LockTutor(ctx, tutor.ID); err != nil {
			return err
		}

		ruleID, err := s.scheduleRepo.CreateRule(ctx, rule)
		if err != nil {
			return err
		}
		result.Rule.ID = ruleID

		for _, slot := range rule.CandidateSlots() {
			conflicts, err := s.conflicts.FindConflicts(ctx, domain.ConflictSourceSchedule, tutor.ID, []domain.TimeSlot{slot})
			if err != nil {
				return err
			}

			if len(conflicts) > 0 {
				if rule.Kind == domain.RuleKindSingle {
					return domain.NewConflict("время пересекается с существующим расписанием", conflicts)
				}
				result.Skipped++
				continue
			}

			entry := domain.ScheduleEntry{
				TutorID:     tutor.ID,
				RuleID:      &ruleID,
				CourseID:    rule.CourseID,
				Date:        slot.Date,
				StartTime:   slot.Start,
				EndTime:     slot.End,
				Mode:        rule.Mode,
				Location:    rule.Location,
				IsRecurring: rule.Kind == domain.RuleKindRecurring,
				Status:      domain.EntryStatusAvailable,
			}
			if err := s.scheduleRepo.CreateEntry(ctx, &entry); err != nil {
				return err
			}
			result.Created = append(result.Created, entry)
		}

		return nil
	})
	if err != nil {
		if domain.IsKind(err, domain.KindInternal) {
			s.logger.Error("ошибка развертывания правила доступности", zap.Int64("tutorID", tutor.ID), zap.Error(err))
			return nil, fmt.Errorf("ошибка сохранения расписания: %w", err)
		}
		s.logger.Warn("правило доступности отклонено", zap.Int64("tutorID", tutor.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("правило доступности развернуто",
		zap.Int64("tutorID", tutor.ID),
		zap.Int64("ruleID", result.Rule.ID),
		zap.String("groupID", rule.GroupID.String()),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *AvailabilityServiceImpl) checkCourse(ctx context.Context, tutorID, courseID int64, mode domain.TeachingMode) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		s.logger.Error("ошибка получения курса", zap.Int64("courseID", courseID), zap.Error(err))
		return fmt.Errorf("ошибка получения курса: %w", err)
	}
	if course == nil {
		return domain.NewNotFound(domain.CodeCourseNotFound, fmt.Sprintf("курс %d не найден", courseID))
	}
	if course.TutorID != tutorID {
		return domain.NewForbidden(domain.CodeNotOwner, "курс принадлежит другому репетитору")
	}
	if !course.TeachingMode.Accepts(mode) {
		return domain.NewInvalidInput(domain.CodeIncompatibleMode,
			fmt.Sprintf("курс проводится в режиме %s, режим %s не поддерживается", course.TeachingMode, mode))
	}
	return nil
}

func (s *AvailabilityServiceImpl) ListSchedule(ctx context.Context, tutorID int64, filter domain.ScheduleFilter) ([]domain.ScheduleEntry, error) {
	if _, err := s.tutors.GetByID(ctx, tutorID); err != nil {
		return nil, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.NewInvalidInput(domain.CodeInvalidDateRange, "конечная дата раньше начальной")
	}

	entries, err := s.scheduleRepo.ListEntries(ctx, tutorID, filter)
	if err != nil {
		s.logger.Error("ошибка получения расписания", zap.Int64("tutorID", tutorID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	return entries, nil
}

// ListOpenSlots returns available entries in [from, to] that no active booking session overlaps.
func (s *AvailabilityServiceImpl) ListOpenSlots(ctx context.Context, tutorID int64, from, to domain.Date) ([]domain.ScheduleEntry, error) {
	if to.Before(from) {
		return nil, domain.NewInvalidInput(domain.CodeInvalidDateRange, "конечная дата раньше начальной")
	}
	if s.cfg.MaxRuleDays > 0 && from.DaysUntil(to)+1 > s.cfg.MaxRuleDays {
		return nil, domain.NewInvalidInput(domain.CodeRuleTooLong,
			fmt.Sprintf("диапазон не может превышать %d дней", s.cfg.MaxRuleDays))
	}

	available := domain.EntryStatusAvailable
	entries, err := s.ListSchedule(ctx, tutorID, domain.ScheduleFilter{From: &from, To: &to, Status: &available})
	if err != nil {
		return nil, err
	}

	sessions, err := s.bookingRepo.FindActiveSessionsInRange(ctx, tutorID, from, to)
	if err != nil {
		s.logger.Error("ошибка получения занятий репетитора", zap.Int64("tutorID", tutorID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения занятий репетитора: %w", err)
	}

	occupied := make([]domain.Occupied, 0, len(sessions))
	for _, sess := range sessions {
		occupied = append(occupied, domain.Occupied{ID: sess.ID, Slot: sess.Slot()})
	}

	open := make([]domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if len(domain.DetectConflicts([]domain.TimeSlot{e.Slot()}, occupied)) > 0 {
			continue
		}
		open = append(open, e)
	}

	return open, nil
}

func (s *AvailabilityServiceImpl) ownedEntry(ctx context.Context, actor domain.Actor, entryID int64) (*domain.ScheduleEntry, error) {
	tutor, err := s.tutors.ResolveActor(ctx, actor)
	if err != nil {
		return nil, err
	}

	entry, err := s.scheduleRepo.GetEntryByID(ctx, entryID)
	if err != nil {
		s.logger.Error("ошибка получения записи расписания", zap.Int64("entryID", entryID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записи расписания: %w", err)
	}
	if entry == nil {
		return nil, domain.NewNotFound(domain.CodeEntryNotFound, fmt.Sprintf("запись расписания %d не найдена", entryID))
	}
	if entry.TutorID != tutor.ID {
		return nil, domain.NewForbidden(domain.CodeNotOwner, "запись расписания принадлежит другому репетитору")
	}

	return entry, nil
}

func (s *AvailabilityServiceImpl) CancelEntry(ctx context.Context, actor domain.Actor, entryID int64) (*domain.ScheduleEntry, error) {
	entry, err := s.ownedEntry(ctx, actor, entryID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.EntryStatusCancelled:
		return entry, nil
	case domain.EntryStatusBooked:
		return nil, domain.NewInvalidInput(domain.CodeEntryBooked, "забронированную запись нельзя отменить")
	}

	if err := s.scheduleRepo.UpdateEntryStatus(ctx, entry.ID, domain.EntryStatusCancelled); err != nil {
		s.logger.Error("ошибка отмены записи расписания", zap.Int64("entryID", entry.ID), zap.Error(err))
		return nil, fmt.Errorf("ошибка отмены записи расписания: %w", err)
	}
	entry.Status = domain.EntryStatusCancelled

	s.logger.Info("запись расписания отменена", zap.Int64("entryID", entry.ID), zap.Int64("tutorID", entry.TutorID))
	return entry, nil
}

func (s *AvailabilityServiceImpl) DeleteEntry(ctx context.Context, actor domain.Actor, entryID int64) error {
	entry, err := s.ownedEntry(ctx, actor, entryID)
	if err != nil {
		return err
	}

	if entry.Status == domain.EntryStatusBooked {
		return domain.NewInvalidInput(domain.CodeEntryBooked, "забронированную запись нельзя удалить")
	}

	if err := s.scheduleRepo.DeleteEntry(ctx, entry.ID); err != nil {
		s.logger.Error("ошибка удаления записи расписания", zap.Int64("entryID", entry.ID), zap.Error(err))
		return fmt.Errorf("ошибка удаления записи расписания: %w", err)
	}

	s.logger.Info("запись расписания удалена", zap.Int64("entryID", entry.ID), zap.Int64("tutorID", entry.TutorID))
	return nil
}
