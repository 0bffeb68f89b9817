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

type TutorRepo struct {
	db *pgxpool.Pool
}

func NewTutorRepository(db *pgxpool.Pool) TutorRepository {
	return &TutorRepo{db: db}
}

const tutorSelect = `
	SELECT t.id, t.user_id, t.headline, t.rating::text, t.rated_sessions, t.is_verified,
	       t.created_at, t.updated_at, u.first_name, u.last_name
	FROM tutor_profiles t
	JOIN users u ON u.id = t.user_id
`

func (r *TutorRepo) GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	return r.getOne(ctx, tutorSelect+` WHERE t.id = $1`, id)
}

func (r *TutorRepo) GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	return r.getOne(ctx, tutorSelect+` WHERE t.user_id = $1`, userID)
}

func (r *TutorRepo) getOne(ctx context.Context, query string, arg int64) (*domain.TutorProfile, error) {
	var (
		tutor  domain.TutorProfile
		rating string
	)

	err := conn(ctx, r.db).QueryRow(ctx, query, arg).Scan(
		&tutor.ID,
		&tutor.UserID,
		&tutor.Headline,
		&rating,
		&tutor.RatedSessions,
		&tutor.IsVerified,
		&tutor.CreatedAt,
		&tutor.UpdatedAt,
		&tutor.FirstName,
		&tutor.LastName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения профиля репетитора: %w", err)
	}

	if tutor.Rating, err = parseDecimal(rating); err != nil {
		return nil, err
	}

	return &tutor, nil
}

func (r *TutorRepo) UpdateRating(ctx context.Context, id int64, rating decimal.Decimal, ratedSessions int) error {
	query := `
		UPDATE tutor_profiles
		SET rating = $1::numeric, rated_sessions = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := conn(ctx, r.db).Exec(ctx, query, rating.StringFixed(2), ratedSessions, id); err != nil {
		return fmt.Errorf("ошибка обновления рейтинга репетитора: %w", err)
	}

	return nil
}
