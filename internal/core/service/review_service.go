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

// RatingCache abstracts the aggregated-rating cache (Redis).
type RatingCache interface {
	Get(ctx context.Context, carID string) (*ports.CarRating, error)
	Set(ctx context.Context, carID string, rating *ports.CarRating) error
	Invalidate(ctx context.Context, carID string) error
}

// ReviewService implements review submission and rating aggregation.
type ReviewService struct {
	reviews ports.ReviewRepository
	cars    ports.CarRepository
	cache   RatingCache
	logger  zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, cars ports.CarRepository, cache RatingCache, logger zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, cars: cars, cache: cache, logger: logger}
}

// AddReview stores a new review and invalidates the car's cached rating.
func (s *ReviewService) AddReview(ctx context.Context, input ports.AddReviewInput) (string, error) {
	if input.UserID == "" {
		return "", domain.ErrUnauthenticated
	}
	if input.CarID == "" || input.Rating < 1 || input.Rating > 5 {
		return "", fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrReviewInvalid)
	}

	if _, err := s.cars.FindByID(ctx, input.CarID); err != nil {
		return "", err
	}

	id, err := s.reviews.Create(ctx, &domain.Review{
		UserID:    input.UserID,
		CarID:     input.CarID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", err
	}

	if err := s.cache.Invalidate(ctx, input.CarID); err != nil {
		s.logger.Warn().Err(err).Str("car_id", input.CarID).Msg("rating cache invalidation failed")
	}

	s.logger.Info().Str("review_id", id).Str("car_id", input.CarID).Int("rating", input.Rating).Msg("review added")
	return id, nil
}

// Rating returns the average rating for a car, served from the cache when
// possible. Cache failures fall through to the repository.
func (s *ReviewService) Rating(ctx context.Context, carID string) (*ports.CarRating, error) {
	if cached, err := s.cache.Get(ctx, carID); err != nil {
		s.logger.Warn().Err(err).Str("car_id", carID).Msg("rating cache read failed")
	} else if cached != nil {
		metrics.RatingCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.RatingCacheTotal.WithLabelValues("miss").Inc()

	reviews, err := s.reviews.ListByCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	rating := &ports.CarRating{Count: len(reviews)}
	if len(reviews) > 0 {
		var total int
		for _, r := range reviews {
			total += r.Rating
		}
		rating.Average = float64(total) / float64(len(reviews))
	}

	if err := s.cache.Set(ctx, carID, rating); err != nil {
		s.logger.Warn().Err(err).Str("car_id", carID).Msg("rating cache write failed")
	}
	return rating, nil
}
