package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"tutorhub/internal/domain"
)

type SessionNoteRepo struct {
	db *pgxpool.Pool
}

func NewSessionNoteRepository(db *pgxpool.Pool) SessionNoteRepository {
	return &SessionNoteRepo{db: db}
}

func (r *SessionNoteRepo) GetBySessionID(ctx context.Context, sessionID int64) (*domain.SessionNote, error) {
	query := `
		SELECT id, session_id, tutor_notes, student_rating, student_feedback, created_at, updated_at
		FROM session_notes
		WHERE session_id = $1
	`

	var note domain.SessionNote
	err := conn(ctx, r.db).QueryRow(ctx, query, sessionID).Scan(
		&note.ID,
		&note.SessionID,
		&note.TutorNotes,
		&note.StudentRating,
		&note.StudentFeedback,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения заметки к занятию: %w", err)
	}

	return &note, nil
}

func (r *SessionNoteRepo) Upsert(ctx context.Context, note *domain.SessionNote) error {
	query := `
		INSERT INTO session_notes (session_id, tutor_notes, student_rating, student_feedback)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE
		SET tutor_notes = EXCLUDED.tutor_notes,
		    student_rating = EXCLUDED.student_rating,
		    student_feedback = EXCLUDED.student_feedback,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := conn(ctx, r.db).QueryRow(
		ctx,
		query,
		note.SessionID,
		note.TutorNotes,
		note.StudentRating,
		note.StudentFeedback,
	).Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ошибка сохранения заметки к занятию: %w", err)
	}

	return nil
}

// RatingStatsForTutor возвращает средний рейтинг и количество оцененных занятий репетитора.
func (r *SessionNoteRepo) RatingStatsForTutor(ctx context.Context, tutorID int64) (decimal.Decimal, int, error) {
	query := `
		SELECT COALESCE(ROUND(AVG(n.student_rating)::numeric, 2), 0)::text, COUNT(n.student_rating)
		FROM session_notes n
		JOIN booking_sessions s ON s.id = n.session_id
		WHERE s.tutor_id = $1 AND n.student_rating IS NOT NULL
	`

	var (
		avg   string
		count int
	)
	if err := conn(ctx, r.db).QueryRow(ctx, query, tutorID).Scan(&avg, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("ошибка расчета рейтинга репетитора: %w", err)
	}

	rating, err := parseDecimal(avg)
	if err != nil {
		return decimal.Zero, 0, err
	}

	return rating, count, nil
}
