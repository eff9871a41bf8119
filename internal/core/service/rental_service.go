package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/api/metrics"
	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// RentalService implements the availability check and booking flow.
type RentalService struct {
	rentals ports.RentalRepository
	cars    ports.CarRepository
	lock    *bookingLock
	logger  zerolog.Logger
}

func NewRentalService(rentals ports.RentalRepository, cars ports.CarRepository, logger zerolog.Logger) *RentalService {
	return &RentalService{
		rentals: rentals,
		cars:    cars,
		lock:    newBookingLock(defaultLockShards),
		logger:  logger,
	}
}

// CheckAvailability reports whether carID is free for the closed day interval
// [startDate, startDate+duration-1]. Active rentals whose stored rent date
// cannot be parsed are skipped rather than treated as blocking. Zero active
// rentals means available. The check mutates nothing.
func (s *RentalService) CheckAvailability(ctx context.Context, carID string, startDate time.Time, duration int) (bool, error) {
	if carID == "" {
		return false, fmt.Errorf("check availability: %w", domain.ErrCarNotFound)
	}
	if duration < 1 {
		duration = 1
	}

	active, err := s.rentals.FindActiveByCar(ctx, carID)
	if err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}

	requested := domain.NewDayInterval(startDate, duration)
	for _, rental := range active {
		booked, ok := rental.Interval()
		if !ok {
			s.logger.Warn().
				Str("rental_id", rental.ID).
				Str("rent_date", rental.RentDate).
				Msg("skipping rental with unparseable rent date")
			continue
		}
		if requested.Overlaps(booked) {
			metrics.AvailabilityChecksTotal.WithLabelValues("unavailable").Inc()
			return false, nil
		}
	}

	metrics.AvailabilityChecksTotal.WithLabelValues("available").Inc()
	return true, nil
}

// Book creates a new active rental after confirming availability. The check
// and the write run under a per-car lock so concurrent bookings for the same
// car are serialised within this process.
func (s *RentalService) Book(ctx context.Context, input ports.BookRentalInput) (*ports.BookRentalResult, error) {
	// 1. Reject unauthenticated callers before any backend call.
	if input.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.CarID == "" {
		return nil, fmt.Errorf("book: %w", domain.ErrCarNotFound)
	}
	duration := input.Duration
	if duration < 1 {
		duration = 1
	}

	// 2. Snapshot the car for denormalised fields and pricing.
	car, err := s.cars.FindByID(ctx, input.CarID)
	if err != nil {
		return nil, fmt.Errorf("book: %w", err)
	}

	// 3. Serialise check-then-book per car.
	unlock := s.lock.Lock(input.CarID)
	defer unlock()

	available, err := s.CheckAvailability(ctx, input.CarID, input.StartDate, duration)
	if err != nil {
		return nil, err
	}
	if !available {
		s.logger.Info().
			Str("car_id", input.CarID).
			Str("user_id", input.UserID).
			Msg("booking rejected, dates unavailable")
		return nil, domain.ErrCarUnavailable
	}

	// 4. Persist the rental. Any persistence error surfaces to the caller.
	rental := &domain.Rental{
		UserID:     input.UserID,
		CarID:      car.ID,
		CarName:    car.Name,
		Image:      car.Image,
		RentDate:   domain.NewDayInterval(input.StartDate, duration).Start.Format(time.DateOnly),
		Duration:   duration,
		Status:     domain.RentalActive,
		TotalPrice: car.Price * float64(duration),
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.rentals.Create(ctx, rental)
	if err != nil {
		s.logger.Error().Err(err).Str("car_id", input.CarID).Msg("failed to create rental")
		return nil, err
	}

	metrics.RentalsCreatedTotal.Inc()
	s.logger.Info().
		Str("rental_id", id).
		Str("car_id", car.ID).
		Str("user_id", input.UserID).
		Int("duration", duration).
		Msg("rental created")

	return &ports.BookRentalResult{
		RentalID:   id,
		CarName:    rental.CarName,
		RentDate:   rental.RentDate,
		Duration:   rental.Duration,
		TotalPrice: rental.TotalPrice,
		Status:     string(rental.Status),
	}, nil
}

// History returns the caller's rentals, newest first (repository order).
func (s *RentalService) History(ctx context.Context, userID string) ([]*domain.Rental, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.rentals.ListByUser(ctx, userID)
}

// Cancel transitions an active rental to cancelled.
func (s *RentalService) Cancel(ctx context.Context, rentalID, callerID string, callerRole domain.Role) error {
	return s.transition(ctx, rentalID, callerID, callerRole, domain.RentalCancelled)
}

// Complete transitions an active rental to completed.
func (s *RentalService) Complete(ctx context.Context, rentalID, callerID string, callerRole domain.Role) error {
	return s.transition(ctx, rentalID, callerID, callerRole, domain.RentalCompleted)
}

func (s *RentalService) transition(ctx context.Context, rentalID, callerID string, callerRole domain.Role, next domain.RentalStatus) error {
	rental, err := s.rentals.FindByID(ctx, rentalID)
	if err != nil {
		return err
	}
	if rental.UserID != callerID && callerRole != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if !rental.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, rental.Status, next)
	}
	if err := s.rentals.UpdateStatus(ctx, rentalID, next); err != nil {
		return err
	}
	s.logger.Info().
		Str("rental_id", rentalID).
		Str("status", string(next)).
		Msg("rental status updated")
	return nil
}
