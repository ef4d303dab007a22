package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/cache"
	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	decision cache.Decision
	err      error
	keys     []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string) (cache.Decision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &fakeLimiter{decision: cache.Decision{Allowed: true, Limit: 10, Remaining: 9}}
	h, _ := newTestHandler(t, WithRateLimiter(limiter))

	rec := httptest.NewRecorder()
	h.rateLimit(okHandler()).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/auth/login", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "9", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, []string{"203.0.113.7:/api/auth/login"}, limiter.keys)
}

func TestRateLimit_Exceeded(t *testing.T) {
	limiter := &fakeLimiter{decision: cache.Decision{Allowed: false, Limit: 10, RetryAfter: 1500 * time.Millisecond}}
	m := metrics.New()
	h, _ := newTestHandler(t, WithRateLimiter(limiter), WithMetrics(m))

	rec := httptest.NewRecorder()
	h.rateLimit(failHandler(t)).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/auth/login", ""))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"), "rounded up to whole seconds")
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "Too many requests. Please try again later.", decodeEnvelope(t, rec).Message)
	assert.Contains(t, scrape(t, m), `mentorhub_http_rate_limited_total{route="unmatched"} 1`)
}

func TestRateLimit_RetryAfterAtLeastOneSecond(t *testing.T) {
	limiter := &fakeLimiter{decision: cache.Decision{Allowed: false, Limit: 1}}
	h, _ := newTestHandler(t, WithRateLimiter(limiter))

	rec := httptest.NewRecorder()
	h.rateLimit(failHandler(t)).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/auth/refresh", ""))

	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis: connection refused")}
	h, _ := newTestHandler(t, WithRateLimiter(limiter))

	rec := httptest.NewRecorder()
	h.rateLimit(okHandler()).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/auth/login", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimit_Disabled(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.rateLimit(okHandler()).ServeHTTP(rec, newJSONRequest(http.MethodPost, "/api/auth/login", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func cache429() cache.Decision {
	return cache.Decision{Allowed: false, Limit: 10, RetryAfter: 30 * time.Second}
}
