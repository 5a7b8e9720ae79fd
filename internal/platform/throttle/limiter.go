package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is the subset of the redis client the limiter needs.
type Counter interface {
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// FixedWindowLimiter allows Limit hits per key in each Window. Counts live in
// redis so every API instance shares them.
type FixedWindowLimiter struct {
	rdb    Counter
	prefix string
	Limit  int
	Window time.Duration
	now    func() time.Time
}

func NewFixedWindowLimiter(rdb Counter, prefix string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		rdb:    rdb,
		prefix: prefix,
		Limit:  limit,
		Window: window,
		now:    time.Now,
	}
}

func (l *FixedWindowLimiter) windowKey(key string) string {
	bucket := l.now().UnixNano() / int64(l.Window)
	return fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)
}

// Allow counts one hit for key and reports whether it is within the limit.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.Limit <= 0 {
		return true, nil
	}

	k := l.windowKey(key)
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, l.Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter %s: %w", k, err)
	}
	return incr.Val() <= int64(l.Limit), nil
}
