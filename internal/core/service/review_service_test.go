package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

type stubReviewRepo struct {
	reviews map[string][]*domain.Review
	nextID  int
	listErr error
	lists   int
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[string][]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, review *domain.Review) (string, error) {
	r.nextID++
	id := fmt.Sprintf("review-%d", r.nextID)
	clone := *review
	clone.ID = id
	r.reviews[review.CarID] = append(r.reviews[review.CarID], &clone)
	return id, nil
}

func (r *stubReviewRepo) ListByCar(_ context.Context, carID string) ([]*domain.Review, error) {
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.reviews[carID], nil
}

type stubRatingCache struct {
	data        map[string]*ports.CarRating
	getErr      error
	invalidated []string
	sets        int
}

func newStubRatingCache() *stubRatingCache {
	return &stubRatingCache{data: make(map[string]*ports.CarRating)}
}

func (c *stubRatingCache) Get(_ context.Context, carID string) (*ports.CarRating, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.data[carID], nil
}

func (c *stubRatingCache) Set(_ context.Context, carID string, rating *ports.CarRating) error {
	c.sets++
	c.data[carID] = rating
	return nil
}

func (c *stubRatingCache) Invalidate(_ context.Context, carID string) error {
	c.invalidated = append(c.invalidated, carID)
	delete(c.data, carID)
	return nil
}

func newReviewService(reviews *stubReviewRepo, cars *stubCarRepo, cache *stubRatingCache) *ReviewService {
	return NewReviewService(reviews, cars, cache, zerolog.Nop())
}

func TestAddReview_InvalidatesCache(t *testing.T) {
	reviews := newStubReviewRepo()
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	cache := newStubRatingCache()
	cache.data["car-1"] = &ports.CarRating{Average: 5, Count: 1}
	svc := newReviewService(reviews, cars, cache)

	id, err := svc.AddReview(context.Background(), ports.AddReviewInput{
		UserID: "user-1",
		CarID:  "car-1",
		Rating: 4,
	})
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a review id")
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "car-1" {
		t.Fatalf("cache not invalidated: %v", cache.invalidated)
	}
}

func TestAddReview_RatingBounds(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	svc := newReviewService(newStubReviewRepo(), cars, newStubRatingCache())

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), ports.AddReviewInput{UserID: "user-1", CarID: "car-1", Rating: rating})
		if !errors.Is(err, domain.ErrReviewInvalid) {
			t.Fatalf("rating %d: expected ErrReviewInvalid, got %v", rating, err)
		}
	}
}

func TestAddReview_RequiresUser(t *testing.T) {
	svc := newReviewService(newStubReviewRepo(), newStubCarRepo(), newStubRatingCache())
	if _, err := svc.AddReview(context.Background(), ports.AddReviewInput{CarID: "car-1", Rating: 3}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAddReview_UnknownCar(t *testing.T) {
	svc := newReviewService(newStubReviewRepo(), newStubCarRepo(), newStubRatingCache())
	if _, err := svc.AddReview(context.Background(), ports.AddReviewInput{UserID: "user-1", CarID: "missing", Rating: 3}); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

func TestRating_ComputesAverage(t *testing.T) {
	reviews := newStubReviewRepo()
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	svc := newReviewService(reviews, cars, newStubRatingCache())

	for _, r := range []int{5, 4, 3} {
		if _, err := svc.AddReview(context.Background(), ports.AddReviewInput{UserID: "user-1", CarID: "car-1", Rating: r}); err != nil {
			t.Fatalf("add review: %v", err)
		}
	}

	rating, err := svc.Rating(context.Background(), "car-1")
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating.Count != 3 {
		t.Fatalf("count = %d, want 3", rating.Count)
	}
	if rating.Average != 4 {
		t.Fatalf("average = %v, want 4", rating.Average)
	}
}

func TestRating_NoReviews(t *testing.T) {
	svc := newReviewService(newStubReviewRepo(), newStubCarRepo(), newStubRatingCache())

	rating, err := svc.Rating(context.Background(), "car-1")
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating.Count != 0 || rating.Average != 0 {
		t.Fatalf("empty car should have zero rating, got %+v", rating)
	}
}

func TestRating_ServedFromCache(t *testing.T) {
	reviews := newStubReviewRepo()
	cache := newStubRatingCache()
	cache.data["car-1"] = &ports.CarRating{Average: 4.5, Count: 2}
	svc := newReviewService(reviews, newStubCarRepo(), cache)

	rating, err := svc.Rating(context.Background(), "car-1")
	if err != nil {
		t.Fatalf("rating: %v", err)
	}
	if rating.Average != 4.5 || rating.Count != 2 {
		t.Fatalf("cached value not returned: %+v", rating)
	}
	if reviews.lists != 0 {
		t.Fatalf("cache hit must not reach the repository")
	}
}

func TestRating_CacheFailureFallsThrough(t *testing.T) {
	reviews := newStubReviewRepo()
	cache := newStubRatingCache()
	cache.getErr = errors.New("redis down")
	svc := newReviewService(reviews, newStubCarRepo(), cache)

	if _, err := svc.Rating(context.Background(), "car-1"); err != nil {
		t.Fatalf("cache failure must not fail the read: %v", err)
	}
	if reviews.lists != 1 {
		t.Fatalf("expected repository fallback")
	}
}
