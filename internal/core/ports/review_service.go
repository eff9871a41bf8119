package ports

import (
	"context"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// AddReviewInput carries a new car review.
type AddReviewInput struct {
	UserID  string
	CarID   string
	Rating  int // 1..5
	Comment string
}

// CarRating is the aggregated review score for a car.
type CarRating struct {
	Average float64
	Count   int
}

// ReviewService defines review submission and rating aggregation.
type ReviewService interface {
	AddReview(ctx context.Context, input AddReviewInput) (string, error)
	Rating(ctx context.Context, carID string) (*CarRating, error)
}

// UserService defines account administration and profile use cases.
type UserService interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error
}
