package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/mentor-hub/internal/adapter"
	"github.com/MKhiriev/mentor-hub/internal/cache"
	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/handler"
	"github.com/MKhiriev/mentor-hub/internal/handler/http"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/metrics"
	"github.com/MKhiriev/mentor-hub/internal/server"
	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/telemetry"
	"github.com/MKhiriev/mentor-hub/internal/workers"
	"github.com/MKhiriev/mentor-hub/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mentor-hub-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, buildVersion)
	if err != nil {
		log.Fatal().Err(err).Msg("error setting up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Error().Err(err).Msg("error flushing traces")
		}
	}()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)

	publisher, err := events.NewPublisher(cfg.Broker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to broker")
	}
	defer publisher.Close()

	verifier, err := adapter.NewGoogleVerifier(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity verifier")
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(storages, verifier, publisher, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	m := metrics.New()
	handlerOpts := []http.Option{http.WithMetrics(m)}

	rdb, err := cache.NewRedisClient(ctx, cfg.Cache)
	switch {
	case errors.Is(err, cache.ErrCacheDisabled):
		log.Info().Msg("redis address is not configured, rate limiting is disabled")
	case err != nil:
		// auth endpoints stay available without the limiter
		log.Warn().Err(err).Msg("redis is unavailable, rate limiting is disabled")
	default:
		defer rdb.Close()
		limiter, err := cache.NewLimiter(rdb, cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating rate limiter")
		}
		handlerOpts = append(handlerOpts, http.WithRateLimiter(limiter))
	}

	handlers, err := handler.NewHandlers(services, *cfg, log, handlerOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	pruner, err := workers.NewTokenPruner(storages.RefreshTokenRepository, cfg.Workers, m, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token pruner")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log, server.WithBackground(workers.NewWorkers(pruner)))
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
