package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/utils"
)

// rateLimit throttles requests per client IP and path. Limiter failures let
// the request through.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		key := utils.ClientIP(r) + ":" + r.URL.Path

		decision, err := h.limiter.Allow(r.Context(), key)
		if err != nil {
			log.Err(err).Str("key", key).Msg("rate limiter unavailable, letting request through")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			h.metrics.RateLimited(routePattern(r))
			log.Warn().Str("key", key).Int("retry_after", retryAfter).Msg("rate limit exceeded")
			writeEnvelope(w, r, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
