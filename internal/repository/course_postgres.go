package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tutorhub/internal/domain"
)

type CourseRepo struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &CourseRepo{db: db}
}

const courseColumns = `id, tutor_id, title, hourly_rate::text, teaching_mode, is_active, created_at, updated_at`

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var (
		course domain.Course
		rate   string
	)

	if err := row.Scan(
		&course.ID,
		&course.TutorID,
		&course.Title,
		&rate,
		&course.TeachingMode,
		&course.IsActive,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if course.HourlyRate, err = parseDecimal(rate); err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *CourseRepo) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := scanCourse(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения курса: %w", err)
	}

	return course, nil
}

func (r *CourseRepo) ListByTutor(ctx context.Context, tutorID int64) ([]domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE tutor_id = $1 ORDER BY id`

	rows, err := conn(ctx, r.db).Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения курсов репетитора: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования курса: %w", err)
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по курсам: %w", err)
	}

	return courses, nil
}
