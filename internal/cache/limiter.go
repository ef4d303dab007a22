package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "mentorhub:ratelimit:"

// fixedWindowScript counts a hit and starts the window on the first one.
// Returns {hits, remaining window in ms}.
var fixedWindowScript = redis.NewScript(`
local hits = redis.call('INCR', KEYS[1])
if hits == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {hits, ttl}
`)

// Decision is the outcome of a single [Limiter.Allow] call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a fixed-window counter kept in Redis, one key per client and route.
type Limiter struct {
	rdb    redis.Scripter
	limit  int
	window time.Duration
}

func NewLimiter(rdb redis.Scripter, cfg config.Cache) (*Limiter, error) {
	if cfg.RateLimit <= 0 || cfg.RateWindow <= 0 {
		return nil, ErrInvalidLimiterCfg
	}
	return &Limiter{rdb: rdb, limit: cfg.RateLimit, window: cfg.RateWindow}, nil
}

// Allow registers one hit for key. Errors are returned as is, the caller
// decides whether to fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := fixedWindowScript.Run(ctx, l.rdb, []string{keyPrefix + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter script: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("%w: %v", ErrUnexpectedReply, res)
	}

	hits, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond

	d := Decision{
		Allowed:   hits <= l.limit,
		Limit:     l.limit,
		Remaining: max(l.limit-hits, 0),
	}
	if !d.Allowed {
		d.RetryAfter = ttl
	}

	return d, nil
}
