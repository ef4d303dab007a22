// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache wraps the Redis client and the fixed-window rate limiter
// that protects the authentication endpoints.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// NewRedisClient connects to Redis and verifies the connection with a PING.
// It returns ErrCacheDisabled when no address is configured.
func NewRedisClient(ctx context.Context, cfg config.Cache) (*redis.Client, error) {
	if cfg.RedisAddress == "" {
		return nil, ErrCacheDisabled
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: %w", ErrRedisUnavailable, err)
	}

	return rdb, nil
}
