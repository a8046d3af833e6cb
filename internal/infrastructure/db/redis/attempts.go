package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptWindow = time.Minute

// AttemptCounter counts login attempts per key within a rolling window,
// backed by Redis. Key format: login:<phone-or-ip>
type AttemptCounter struct {
	client *redis.Client
}

// NewAttemptCounter creates an AttemptCounter wrapping the given Redis client.
func NewAttemptCounter(client *redis.Client) *AttemptCounter {
	if client == nil {
		return nil
	}
	return &AttemptCounter{client: client}
}

// Bump increments the attempt count for key and returns the new total.
// The first attempt in a window starts the expiry clock.
func (a *AttemptCounter) Bump(ctx context.Context, key string) (int64, error) {
	k := "login:" + key
	count, err := a.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("attempt bump: %w", err)
	}
	if count == 1 {
		a.client.Expire(ctx, k, attemptWindow)
	}
	return count, nil
}
