package cache

import "errors"

var (
	ErrCacheDisabled     = errors.New("cache is disabled: redis address is empty")
	ErrRedisUnavailable  = errors.New("redis is unavailable")
	ErrUnexpectedReply   = errors.New("unexpected rate limiter reply")
	ErrInvalidLimiterCfg = errors.New("rate limit and window must be positive")
)
