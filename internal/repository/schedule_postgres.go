package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tutorhub/internal/domain"
)

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) CreateRule(ctx context.Context, rule domain.AvailabilityRule) (int64, error) {
	var id int64

	weekdays := make([]int32, len(rule.RepeatWeekdays))
	for i, w := range rule.RepeatWeekdays {
		weekdays[i] = int32(w)
	}

	query := `
		INSERT INTO availability_rules (
			tutor_id, course_id, kind, group_id, start_date, end_date, repeat_weekdays,
			start_time, end_time, mode, location
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::time, $9::time, $10, $11)
		RETURNING id
	`

	err := conn(ctx, r.db).QueryRow(
		ctx,
		query,
		rule.TutorID,
		rule.CourseID,
		rule.Kind,
		rule.GroupID,
		rule.StartDate.Time,
		rule.EndDate.Time,
		weekdays,
		rule.StartTime.String(),
		rule.EndTime.String(),
		rule.Mode,
		rule.Location,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания правила доступности: %w", err)
	}

	return id, nil
}

func (r *ScheduleRepo) CreateEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	query := `
		INSERT INTO schedule_entries (
			tutor_id, rule_id, course_id, date, start_time, end_time, mode, location, is_recurring, status
		) VALUES ($1, $2, $3, $4, $5::time, $6::time, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(
		ctx,
		query,
		entry.TutorID,
		entry.RuleID,
		entry.CourseID,
		entry.Date.Time,
		entry.StartTime.String(),
		entry.EndTime.String(),
		entry.Mode,
		entry.Location,
		entry.IsRecurring,
		entry.Status,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи расписания: %w", err)
	}

	return nil
}

const entryColumns = `
	id, tutor_id, rule_id, course_id, date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	mode, location, is_recurring, status, created_at, updated_at
`

func scanEntry(row pgx.Row) (*domain.ScheduleEntry, error) {
	var (
		entry      domain.ScheduleEntry
		date       time.Time
		start, end string
	)

	if err := row.Scan(
		&entry.ID,
		&entry.TutorID,
		&entry.RuleID,
		&entry.CourseID,
		&date,
		&start,
		&end,
		&entry.Mode,
		&entry.Location,
		&entry.IsRecurring,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, err
	}

	entry.Date = domain.DateOf(date)

	var err error
	if entry.StartTime, err = parseClock(start); err != nil {
		return nil, err
	}
	if entry.EndTime, err = parseClock(end); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *ScheduleRepo) collectEntries(rows pgx.Rows) ([]domain.ScheduleEntry, error) {
	defer rows.Close()

	var entries []domain.ScheduleEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи расписания: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по расписанию: %w", err)
	}

	return entries, nil
}

func (r *ScheduleRepo) GetEntryByID(ctx context.Context, id int64) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM schedule_entries WHERE id = $1`

	entry, err := scanEntry(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения записи расписания: %w", err)
	}

	return entry, nil
}

func (r *ScheduleRepo) FindActiveEntriesOnDate(ctx context.Context, tutorID int64, date domain.Date) ([]domain.ScheduleEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM schedule_entries
		WHERE tutor_id = $1 AND date = $2 AND status <> 'cancelled'
		ORDER BY start_time
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, tutorID, date.Time)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания на дату: %w", err)
	}

	return r.collectEntries(rows)
}

func (r *ScheduleRepo) ListEntries(ctx context.Context, tutorID int64, filter domain.ScheduleFilter) ([]domain.ScheduleEntry, error) {
	conditions := []string{"tutor_id = $1"}
	args := []interface{}{tutorID}
	argCount := 2

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argCount))
		args = append(args, filter.From.Time)
		argCount++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argCount))
		args = append(args, filter.To.Time)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
	}

	query := `
		SELECT ` + entryColumns + `
		FROM schedule_entries
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY date, start_time
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расписания: %w", err)
	}

	return r.collectEntries(rows)
}

func (r *ScheduleRepo) UpdateEntryStatus(ctx context.Context, id int64, status domain.EntryStatus) error {
	query := `UPDATE schedule_entries SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := conn(ctx, r.db).Exec(ctx, query, status, id); err != nil {
		return fmt.Errorf("ошибка обновления статуса записи расписания: %w", err)
	}

	return nil
}

// SetEntriesStatusForSlot переводит записи, точно совпадающие со слотом, из статуса from в статус to.
func (r *ScheduleRepo) SetEntriesStatusForSlot(ctx context.Context, tutorID int64, slot domain.TimeSlot, from, to domain.EntryStatus) error {
	query := `
		UPDATE schedule_entries
		SET status = $1, updated_at = NOW()
		WHERE tutor_id = $2 AND date = $3 AND start_time = $4::time AND end_time = $5::time AND status = $6
	`

	_, err := conn(ctx, r.db).Exec(ctx, query, to, tutorID, slot.Date.Time, slot.Start.String(), slot.End.String(), from)
	if err != nil {
		return fmt.Errorf("ошибка обновления записей расписания для слота: %w", err)
	}

	return nil
}

func (r *ScheduleRepo) DeleteEntry(ctx context.Context, id int64) error {
	query := `DELETE FROM schedule_entries WHERE id = $1`

	if _, err := conn(ctx, r.db).Exec(ctx, query, id); err != nil {
		return fmt.Errorf("ошибка удаления записи расписания: %w", err)
	}

	return nil
}
