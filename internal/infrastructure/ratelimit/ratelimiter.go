// Package ratelimit counts requests per client in fixed windows shared
// through Redis, so every instance behind the load balancer sees the same
// counters.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter allows at most limit hits per key in each window.
type FixedWindowLimiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewFixedWindowLimiter(client redis.Cmdable, limit int, window time.Duration) *FixedWindowLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &FixedWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:ip",
		now:    time.Now,
	}
}

func (l *FixedWindowLimiter) key(subject string) string {
	bucket := l.now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("%s:%s:%d", l.prefix, subject, bucket)
}

// Allow records one hit for subject and reports whether it is within the
// limit. The counter key expires one second after its window closes.
func (l *FixedWindowLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	key := l.key(subject)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window+time.Second).Err(); err != nil {
			return false, fmt.Errorf("failed to expire %s: %w", key, err)
		}
	}

	return count <= int64(l.limit), nil
}
