package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/domain"
	"tutorhub/internal/repository"
)

type CourseServiceImpl struct {
	repo   repository.CourseRepository
	tutors TutorService
	logger *zap.Logger
}

func NewCourseService(repo repository.CourseRepository, tutors TutorService, logger *zap.Logger) *CourseServiceImpl {
	return &CourseServiceImpl{
		repo:   repo,
		tutors: tutors,
		logger: logger,
	}
}

func (s *CourseServiceImpl) ListByTutor(ctx context.Context, tutorID int64) ([]domain.Course, error) {
	if _, err := s.tutors.GetByID(ctx, tutorID); err != nil {
		return nil, err
	}

	courses, err := s.repo.ListByTutor(ctx, tutorID)
	if err != nil {
		s.logger.Error("ошибка получения курсов репетитора", zap.Int64("tutorID", tutorID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения курсов репетитора: %w", err)
	}

	return courses, nil
}
