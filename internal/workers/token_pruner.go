// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/robfig/cron/v3"
)

// pruneTimeout bounds a single scheduled prune.
const pruneTimeout = time.Minute

// TokenPruner periodically deletes refresh tokens that were revoked or
// expired longer than the retention period ago.
type TokenPruner struct {
	tokens    store.RefreshTokenRepository
	retention time.Duration
	metrics   *metrics.Metrics

	cron *cron.Cron
	now  func() time.Time

	logger *logger.Logger
}

// NewTokenPruner schedules the pruner on cfg.TokenPruneSchedule. The
// schedule accepts standard five-field cron specs and descriptors such as
// "@every 1h". The job is not started until [TokenPruner.Run].
func NewTokenPruner(tokens store.RefreshTokenRepository, cfg config.Workers, m *metrics.Metrics, log *logger.Logger) (*TokenPruner, error) {
	if cfg.TokenRetention <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRetention, cfg.TokenRetention)
	}

	cronLog := newCronLogger(log)
	p := &TokenPruner{
		tokens:    tokens,
		retention: cfg.TokenRetention,
		metrics:   m,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		now:    time.Now,
		logger: log,
	}

	if _, err := p.cron.AddFunc(cfg.TokenPruneSchedule, p.scheduledPrune); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidSchedule, cfg.TokenPruneSchedule, err)
	}

	return p, nil
}

// Run implements [Worker].
func (p *TokenPruner) Run() {
	p.logger.Info().Str("func", "*TokenPruner.Run").Dur("retention", p.retention).Msg("token pruner started")
	p.cron.Start()
}

// Stop implements [Worker]. A prune that is already running is allowed to
// finish until ctx expires.
func (p *TokenPruner) Stop(ctx context.Context) error {
	done := p.cron.Stop()

	select {
	case <-done.Done():
		p.logger.Info().Str("func", "*TokenPruner.Stop").Msg("token pruner stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Prune deletes stale tokens once and returns how many rows were removed.
func (p *TokenPruner) Prune(ctx context.Context) (int64, error) {
	cutoff := p.now().UTC().Add(-p.retention)

	deleted, err := p.tokens.DeleteStaleTokens(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune refresh tokens: %w", err)
	}
	p.metrics.TokensPruned(deleted)

	p.logger.Info().
		Str("func", "*TokenPruner.Prune").
		Time("cutoff", cutoff).
		Int64("deleted", deleted).
		Msg("stale refresh tokens pruned")

	return deleted, nil
}

func (p *TokenPruner) scheduledPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	if _, err := p.Prune(ctx); err != nil {
		p.logger.Err(err).Str("func", "*TokenPruner.scheduledPrune").Msg("scheduled prune failed")
	}
}
