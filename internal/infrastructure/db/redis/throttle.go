package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultThrottleInterval = time.Minute

// Throttle rate-limits recovery-code issuance per email.
// Key format: otp_throttle:<email>
type Throttle struct {
	client   *redis.Client
	interval time.Duration
}

// NewThrottle creates a Throttle wrapping the given Redis client. A
// non-positive interval falls back to one minute.
func NewThrottle(client *redis.Client, interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = defaultThrottleInterval
	}
	return &Throttle{client: client, interval: interval}
}

// Allow reports whether a new code may be issued for email, and marks the
// interval when it may. One issuance is allowed per interval.
func (t *Throttle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", t.interval).Result()
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return ok, nil
}

func (t *Throttle) key(email string) string {
	return fmt.Sprintf("otp_throttle:%s", email)
}
