package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

type TutorServiceImpl struct {
	repo   repository.TutorRepository
	logger *zap.Logger
}

func NewTutorService(repo repository.TutorRepository, logger *zap.Logger) *TutorServiceImpl {
	return &TutorServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *TutorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	tutor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения профиля репетитора", zap.Int64("tutorID", id), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения профиля репетитора: %w", err)
	}
	if tutor == nil {
		return nil, domain.NewNotFound(domain.CodeTutorNotFound, fmt.Sprintf("репетитор %d не найден", id))
	}
	return tutor, nil
}

// ResolveActor возвращает профиль репетитора, от имени которого действует пользователь.
func (s *TutorServiceImpl) ResolveActor(ctx context.Context, actor domain.Actor) (*domain.TutorProfile, error) {
	if !actor.IsTutor() {
		return nil, domain.NewForbidden(domain.CodeRoleNotAllowed, "действие доступно только репетитору")
	}

	tutor, err := s.repo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		s.logger.Error("ошибка получения профиля репетитора по пользователю", zap.Int64("userID", actor.UserID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения профиля репетитора: %w", err)
	}
	if tutor == nil {
		return nil, domain.NewNotFound(domain.CodeTutorNotFound, "профиль репетитора не найден")
	}
	return tutor, nil
}
