package service

import (
	"context"
	"fmt"
	"sort"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

// ConflictDetectorImpl answers "does this slot collide with the tutor's active commitments"
// for both schedule entries and booking sessions using one overlap rule.
type ConflictDetectorImpl struct {
	scheduleRepo repository.ScheduleRepository
	bookingRepo  repository.BookingRepository
}

func NewConflictDetector(scheduleRepo repository.ScheduleRepository, bookingRepo repository.BookingRepository) *ConflictDetectorImpl {
	return &ConflictDetectorImpl{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
	}
}

func (d *ConflictDetectorImpl) HasConflict(ctx context.Context, source domain.ConflictSource, tutorID int64, slot domain.TimeSlot) (bool, error) {
	conflicts, err := d.FindConflicts(ctx, source, tutorID, []domain.TimeSlot{slot})
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// FindConflicts загружает активные записи репетитора по каждой затронутой дате один раз
// и сверяет с ними все слоты пачки.
func (d *ConflictDetectorImpl) FindConflicts(ctx context.Context, source domain.ConflictSource, tutorID int64, slots []domain.TimeSlot) ([]domain.SlotConflict, error) {
	if !source.IsValid() {
		return nil, domain.NewInvalidInput(domain.CodeInvalidSource, fmt.Sprintf("неизвестный источник проверки %q", source))
	}

	byDate := make(map[string]domain.Date)
	for _, s := range slots {
		byDate[s.Date.String()] = s.Date
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var occupied []domain.Occupied
	for _, k := range keys {
		found, err := d.occupiedOn(ctx, source, tutorID, byDate[k])
		if err != nil {
			return nil, err
		}
		occupied = append(occupied, found...)
	}

	return domain.DetectConflicts(slots, occupied), nil
}

func (d *ConflictDetectorImpl) occupiedOn(ctx context.Context, source domain.ConflictSource, tutorID int64, date domain.Date) ([]domain.Occupied, error) {
	var occupied []domain.Occupied

	switch source {
	case domain.ConflictSourceSchedule:
		entries, err := d.scheduleRepo.FindActiveEntriesOnDate(ctx, tutorID, date)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки расписания репетитора: %w", err)
		}
		for _, e := range entries {
			if e.Status == domain.EntryStatusCancelled {
				continue
			}
			occupied = append(occupied, domain.Occupied{ID: e.ID, Slot: e.Slot()})
		}
	case domain.ConflictSourceBookings:
		sessions, err := d.bookingRepo.FindActiveSessionsOnDate(ctx, tutorID, date)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки занятий репетитора: %w", err)
		}
		for _, s := range sessions {
			if s.Status == domain.SessionStatusCancelled {
				continue
			}
			occupied = append(occupied, domain.Occupied{ID: s.ID, Slot: s.Slot()})
		}
	}

	return occupied, nil
}
