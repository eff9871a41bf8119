package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qent/car-rental-system/internal/core/ports"
)

const ratingTTL = 10 * time.Minute

// RatingCache caches aggregated car ratings in Redis.
// Key format: rating:<car_id>
type RatingCache struct {
	client *redis.Client
}

// NewRatingCache creates a RatingCache wrapping the given Redis client.
func NewRatingCache(client *redis.Client) *RatingCache {
	return &RatingCache{client: client}
}

// Get returns the cached rating, or (nil, nil) on a cache miss.
func (c *RatingCache) Get(ctx context.Context, carID string) (*ports.CarRating, error) {
	raw, err := c.client.Get(ctx, c.key(carID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("rating cache get: %w", err)
	}

	var rating ports.CarRating
	if err := json.Unmarshal(raw, &rating); err != nil {
		return nil, fmt.Errorf("rating cache decode: %w", err)
	}
	return &rating, nil
}

// Set stores the rating with a short TTL.
func (c *RatingCache) Set(ctx context.Context, carID string, rating *ports.CarRating) error {
	raw, err := json.Marshal(rating)
	if err != nil {
		return fmt.Errorf("rating cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(carID), raw, ratingTTL).Err()
}

// Invalidate drops the cached rating after a new review is written.
func (c *RatingCache) Invalidate(ctx context.Context, carID string) error {
	return c.client.Del(ctx, c.key(carID)).Err()
}

func (c *RatingCache) key(carID string) string {
	return "rating:" + carID
}
