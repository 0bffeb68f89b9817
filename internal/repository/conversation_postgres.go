package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tutorhub/internal/domain"
)

type ConversationRepo struct {
	db *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) ConversationRepository {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) GetByParticipants(ctx context.Context, studentID, tutorID int64) (*domain.Conversation, error) {
	query := `
		SELECT id, student_id, tutor_id, created_at
		FROM conversations
		WHERE student_id = $1 AND tutor_id = $2
	`

	var c domain.Conversation
	err := conn(ctx, r.db).QueryRow(ctx, query, studentID, tutorID).Scan(&c.ID, &c.StudentID, &c.TutorID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения диалога: %w", err)
	}

	return &c, nil
}

// Create создает диалог; при гонке с параллельным созданием возвращает уже существующий.
func (r *ConversationRepo) Create(ctx context.Context, studentID, tutorID int64) (*domain.Conversation, error) {
	query := `
		INSERT INTO conversations (student_id, tutor_id)
		VALUES ($1, $2)
		ON CONFLICT (student_id, tutor_id) DO NOTHING
		RETURNING id, student_id, tutor_id, created_at
	`

	var c domain.Conversation
	err := conn(ctx, r.db).QueryRow(ctx, query, studentID, tutorID).Scan(&c.ID, &c.StudentID, &c.TutorID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.GetByParticipants(ctx, studentID, tutorID)
		}
		return nil, fmt.Errorf("ошибка создания диалога: %w", err)
	}

	return &c, nil
}
