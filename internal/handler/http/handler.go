package http

import (
	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/MKhiriev/mentor-hub/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.App

	limiter RateLimiter
	metrics *metrics.Metrics

	logger *logger.Logger
}

// Option configures optional collaborators of [Handler].
type Option func(*Handler)

// WithRateLimiter enables rate limiting of the /api/auth endpoints.
func WithRateLimiter(limiter RateLimiter) Option {
	return func(h *Handler) {
		h.limiter = limiter
	}
}

// WithMetrics enables request metrics and mounts GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		cfg:      cfg,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().
		Bool("rate_limit", h.limiter != nil).
		Bool("metrics", h.metrics != nil).
		Msg("http handler created")
	return h
}
