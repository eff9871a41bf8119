package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// OnboardingStore records which devices have completed onboarding. The flag is
// durable (no TTL) and deliberately independent of any account: signing out
// does not bring the onboarding screens back.
// Key format: onboarding:<device_id>
type OnboardingStore struct {
	client *redis.Client
}

// NewOnboardingStore creates an OnboardingStore wrapping the given Redis client.
func NewOnboardingStore(client *redis.Client) *OnboardingStore {
	return &OnboardingStore{client: client}
}

// Completed reports whether the device has finished onboarding.
func (s *OnboardingStore) Completed(ctx context.Context, deviceID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(deviceID)).Result()
	if err != nil {
		return false, fmt.Errorf("onboarding check: %w", err)
	}
	return n > 0, nil
}

// MarkCompleted records that the device has finished onboarding.
func (s *OnboardingStore) MarkCompleted(ctx context.Context, deviceID string) error {
	return s.client.Set(ctx, s.key(deviceID), "1", 0).Err()
}

func (s *OnboardingStore) key(deviceID string) string {
	return "onboarding:" + deviceID
}
