package ports

import (
	"context"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// RentalRepository defines persistence operations for rental records.
type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Rental, error)
	// FindActiveByCar returns every rental with status = active for the car.
	// This is the read the availability check depends on.
	FindActiveByCar(ctx context.Context, carID string) ([]*domain.Rental, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Rental, error)
	UpdateStatus(ctx context.Context, id string, status domain.RentalStatus) error
}

// ReviewRepository defines persistence operations for car reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (string, error)
	ListByCar(ctx context.Context, carID string) ([]*domain.Review, error)
}
