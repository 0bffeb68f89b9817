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

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) CreateRequest(ctx context.Context, request *domain.BookingRequest) error {
	query := `
		INSERT INTO booking_requests (
			student_id, tutor_id, course_id, mode, location, note,
			hourly_rate, total_hours, total_amount, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8::numeric, $9::numeric, $10)
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(
		ctx,
		query,
		request.StudentID,
		request.TutorID,
		request.CourseID,
		request.Mode,
		request.Location,
		request.Note,
		request.HourlyRate.String(),
		request.TotalHours.String(),
		request.TotalAmount.String(),
		request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания заявки на бронирование: %w", err)
	}

	return nil
}

func (r *BookingRepo) CreateSession(ctx context.Context, session *domain.BookingSession) error {
	query := `
		INSERT INTO booking_sessions (
			request_id, tutor_id, date, start_time, end_time, hours, amount, status
		) VALUES ($1, $2, $3, $4::time, $5::time, $6::numeric, $7::numeric, $8)
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(
		ctx,
		query,
		session.RequestID,
		session.TutorID,
		session.Date.Time,
		session.StartTime.String(),
		session.EndTime.String(),
		session.Hours.String(),
		session.Amount.String(),
		session.Status,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.NewConflict("слот уже занят другим бронированием", []domain.SlotConflict{{Requested: session.Slot()}})
		}
		return fmt.Errorf("ошибка создания занятия: %w", err)
	}

	return nil
}

const requestColumns = `
	id, student_id, tutor_id, course_id, mode, location, note,
	hourly_rate::text, total_hours::text, total_amount::text, status, created_at, updated_at
`

func scanRequest(row pgx.Row) (*domain.BookingRequest, error) {
	var (
		req                 domain.BookingRequest
		rate, hours, amount string
	)

	if err := row.Scan(
		&req.ID,
		&req.StudentID,
		&req.TutorID,
		&req.CourseID,
		&req.Mode,
		&req.Location,
		&req.Note,
		&rate,
		&hours,
		&amount,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if req.HourlyRate, err = parseDecimal(rate); err != nil {
		return nil, err
	}
	if req.TotalHours, err = parseDecimal(hours); err != nil {
		return nil, err
	}
	if req.TotalAmount, err = parseDecimal(amount); err != nil {
		return nil, err
	}

	return &req, nil
}

func (r *BookingRepo) GetRequestByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.getRequest(ctx, `SELECT `+requestColumns+` FROM booking_requests WHERE id = $1`, id)
}

// LockRequest читает заявку с блокировкой строки; вызывать внутри транзакции.
func (r *BookingRepo) LockRequest(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	return r.getRequest(ctx, `SELECT `+requestColumns+` FROM booking_requests WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepo) getRequest(ctx context.Context, query string, id int64) (*domain.BookingRequest, error) {
	req, err := scanRequest(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения заявки на бронирование: %w", err)
	}

	return req, nil
}

const sessionColumns = `
	id, request_id, tutor_id, date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	hours::text, amount::text, status, created_at, updated_at
`

func scanSession(row pgx.Row) (*domain.BookingSession, error) {
	var (
		s                         domain.BookingSession
		date                      time.Time
		start, end, hours, amount string
	)

	if err := row.Scan(
		&s.ID,
		&s.RequestID,
		&s.TutorID,
		&date,
		&start,
		&end,
		&hours,
		&amount,
		&s.Status,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Date = domain.DateOf(date)

	var err error
	if s.StartTime, err = parseClock(start); err != nil {
		return nil, err
	}
	if s.EndTime, err = parseClock(end); err != nil {
		return nil, err
	}
	if s.Hours, err = parseDecimal(hours); err != nil {
		return nil, err
	}
	if s.Amount, err = parseDecimal(amount); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *BookingRepo) collectSessions(rows pgx.Rows) ([]domain.BookingSession, error) {
	defer rows.Close()

	var sessions []domain.BookingSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования занятия: %w", err)
		}
		sessions = append(sessions, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по занятиям: %w", err)
	}

	return sessions, nil
}

func (r *BookingRepo) GetSessionByID(ctx context.Context, id int64) (*domain.BookingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM booking_sessions WHERE id = $1`

	s, err := scanSession(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения занятия: %w", err)
	}

	return s, nil
}

func (r *BookingRepo) ListSessionsByRequest(ctx context.Context, requestID int64) ([]domain.BookingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM booking_sessions
		WHERE request_id = $1
		ORDER BY date, start_time, id
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения занятий заявки: %w", err)
	}

	return r.collectSessions(rows)
}

func (r *BookingRepo) FindActiveSessionsOnDate(ctx context.Context, tutorID int64, date domain.Date) ([]domain.BookingSession, error) {
	return r.FindActiveSessionsInRange(ctx, tutorID, date, date)
}

func (r *BookingRepo) FindActiveSessionsInRange(ctx context.Context, tutorID int64, from, to domain.Date) ([]domain.BookingSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM booking_sessions
		WHERE tutor_id = $1 AND date BETWEEN $2 AND $3 AND status <> 'cancelled'
		ORDER BY date, start_time
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, tutorID, from.Time, to.Time)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения активных занятий репетитора: %w", err)
	}

	return r.collectSessions(rows)
}

func (r *BookingRepo) ListRequests(ctx context.Context, filter domain.BookingFilter) ([]domain.BookingRequest, int, error) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.StudentID != nil {
		conditions = append(conditions, fmt.Sprintf("student_id = $%d", argCount))
		args = append(args, *filter.StudentID)
		argCount++
	}

	if filter.TutorID != nil {
		conditions = append(conditions, fmt.Sprintf("tutor_id = $%d", argCount))
		args = append(args, *filter.TutorID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM booking_sessions s WHERE s.request_id = booking_requests.id AND s.date >= $%d)", argCount))
		args = append(args, filter.From.Time)
		argCount++
	}

	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM booking_sessions s WHERE s.request_id = booking_requests.id AND s.date <= $%d)", argCount))
		args = append(args, filter.To.Time)
		argCount++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM booking_requests` + where
	if err := conn(ctx, r.db).QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заявок: %w", err)
	}

	query := `SELECT ` + requestColumns + ` FROM booking_requests` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заявок: %w", err)
	}
	defer rows.Close()

	var requests []domain.BookingRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования заявки: %w", err)
		}
		requests = append(requests, *req)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка при итерации по заявкам: %w", err)
	}

	return requests, total, nil
}

func (r *BookingRepo) UpdateRequestStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query := `UPDATE booking_requests SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := conn(ctx, r.db).Exec(ctx, query, status, id); err != nil {
		return fmt.Errorf("ошибка обновления статуса заявки: %w", err)
	}

	return nil
}

func (r *BookingRepo) UpdateSessionStatus(ctx context.Context, id int64, status domain.SessionStatus) error {
	query := `UPDATE booking_sessions SET status = $1, updated_at = NOW() WHERE id = $2`

	if _, err := conn(ctx, r.db).Exec(ctx, query, status, id); err != nil {
		if isExclusionViolation(err) {
			return domain.NewConflict("время занятия уже занято другим бронированием", nil)
		}
		return fmt.Errorf("ошибка обновления статуса занятия: %w", err)
	}

	return nil
}

// UpdateSessionsStatusByRequest не трогает уже отмененные занятия заявки.
func (r *BookingRepo) UpdateSessionsStatusByRequest(ctx context.Context, requestID int64, status domain.SessionStatus) error {
	query := `UPDATE booking_sessions SET status = $1, updated_at = NOW()
		WHERE request_id = $2 AND status <> 'cancelled'`

	if _, err := conn(ctx, r.db).Exec(ctx, query, status, requestID); err != nil {
		if isExclusionViolation(err) {
			return domain.NewConflict("время занятий заявки уже занято другим бронированием", nil)
		}
		return fmt.Errorf("ошибка обновления статусов занятий заявки: %w", err)
	}

	return nil
}
