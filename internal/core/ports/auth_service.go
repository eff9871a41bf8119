package ports

import (
	"context"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// RegisterInput carries sign-up details. Role is not accepted from callers:
// every new account starts as a regular user.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Country  string
}

// AuthService defines registration and login use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
