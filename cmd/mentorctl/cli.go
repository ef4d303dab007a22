package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/mentor-hub/internal/config"
	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/internal/store"
)

// cli holds state shared by all commands. The loaders are replaced in tests.
type cli struct {
	configPath string
	logLevel   string

	out io.Writer
	log *logger.Logger

	loadConfig func(path string) (*config.StructuredConfig, error)
	connect    func(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, error)
}

func newCLI() *cli {
	return &cli{
		out:        os.Stdout,
		log:        logger.NewLogger("mentorctl"),
		loadConfig: config.LoadConfig,
		connect:    store.NewConnectPostgres,
	}
}

func (c *cli) setup() error {
	if err := logger.SetLevel(c.logLevel); err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	return nil
}

// open loads the configuration and connects to the database.
// The caller closes the returned DB.
func (c *cli) open(ctx context.Context) (*config.StructuredConfig, *store.DB, error) {
	cfg, err := c.loadConfig(c.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := c.connect(ctx, cfg.Storage.DB, c.log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	return cfg, db, nil
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
