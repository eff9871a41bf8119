package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// UserService implements account administration and profile use cases.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return nil
}
