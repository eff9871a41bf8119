package ports

import (
	"context"
	"time"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// BookRentalInput carries all data needed to book a car.
type BookRentalInput struct {
	UserID    string
	CarID     string
	StartDate time.Time
	Duration  int // whole days, >= 1
}

// BookRentalResult is returned by the service after a successful booking.
type BookRentalResult struct {
	RentalID   string
	CarName    string
	RentDate   string
	Duration   int
	TotalPrice float64
	Status     string
}

// RentalService defines the booking use cases: the availability check, the
// booking write that depends on it, history, and status transitions.
type RentalService interface {
	// CheckAvailability reports whether the car is free for the closed day
	// interval [startDate, startDate+duration-1]. Read-only.
	CheckAvailability(ctx context.Context, carID string, startDate time.Time, duration int) (bool, error)
	Book(ctx context.Context, input BookRentalInput) (*BookRentalResult, error)
	History(ctx context.Context, userID string) ([]*domain.Rental, error)
	// Cancel and Complete apply guarded transitions from the active status.
	// Callers other than the rental's owner must hold the admin role.
	Cancel(ctx context.Context, rentalID, callerID string, callerRole domain.Role) error
	Complete(ctx context.Context, rentalID, callerID string, callerRole domain.Role) error
}
