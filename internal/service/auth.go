package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/domain"
	"tutorhub/pkg/auth"
)

type AuthServiceImpl struct {
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthService(tokens *auth.TokenManager, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		tokens: tokens,
		logger: logger,
	}
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, token string) (domain.Actor, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.logger.Debug("отклонен токен доступа", zap.Error(err))
		return domain.Actor{}, err
	}

	role := domain.UserRole(claims.Role)
	if !role.IsValid() {
		return domain.Actor{}, fmt.Errorf("неизвестная роль в токене: %q", claims.Role)
	}

	return domain.Actor{UserID: claims.UserID, Role: role}, nil
}
