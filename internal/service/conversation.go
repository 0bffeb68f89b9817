package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

type ConversationServiceImpl struct {
	repo   repository.ConversationRepository
	logger *zap.Logger
}

func NewConversationService(repo repository.ConversationRepository, logger *zap.Logger) *ConversationServiceImpl {
	return &ConversationServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// EnsureConversation возвращает существующий диалог студента с репетитором или создает новый.
func (s *ConversationServiceImpl) EnsureConversation(ctx context.Context, studentID, tutorID int64) (*domain.Conversation, error) {
	existing, err := s.repo.GetByParticipants(ctx, studentID, tutorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска диалога: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	created, err := s.repo.Create(ctx, studentID, tutorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания диалога: %w", err)
	}

	s.logger.Info("создан диалог",
		zap.Int64("conversationID", created.ID),
		zap.Int64("studentID", studentID),
		zap.Int64("tutorID", tutorID),
	)

	return created, nil
}
