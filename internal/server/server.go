package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/handler"
	"github.com/MKhiriev/mentor-hub/internal/logger"
)

type server struct {
	httpServer *httpServer
	background []BackgroundRunner
	logger     *logger.Logger
}

// Option customizes the server built by [NewServer].
type Option func(*server)

// WithBackground registers runners that start with the server and stop
// after the HTTP listener has shut down.
func WithBackground(runners ...BackgroundRunner) Option {
	return func(s *server) {
		for _, r := range runners {
			if r != nil {
				s.background = append(s.background, r)
			}
		}
	}
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, opts ...Option) (Server, error) {
	logger.Info().Msg("creating new server...")
	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	servers := &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(servers)
	}

	return servers, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Info().Msgf("Error running server: %v \n", err)
	}
}

func (s *server) Shutdown() {
	// finish HTTP server
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	// stop background workers once no request can reach them
	ctx := context.Background()
	if s.httpServer != nil && s.httpServer.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.httpServer.shutdownTimeout)
		defer cancel()
	}
	for i := len(s.background) - 1; i >= 0; i-- {
		if err := s.background[i].Stop(ctx); err != nil {
			s.logger.Error().Err(err).Msg("background runner Stop")
		}
	}
}

func (s *server) run() error {
	// check if any server was created
	if s.httpServer == nil {
		return errors.New("no servers to run")
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		// finish started servers
		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	for _, r := range s.background {
		r.Run()
	}

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}
