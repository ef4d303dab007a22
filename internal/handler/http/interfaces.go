package http

import (
	"context"

	"github.com/MKhiriev/mentor-hub/internal/cache"
)

// RateLimiter counts hits per key. Implemented by [cache.Limiter].
type RateLimiter interface {
	Allow(ctx context.Context, key string) (cache.Decision, error)
}
