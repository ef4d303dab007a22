package main

import (
	"github.com/MKhiriev/mentor-hub/internal/events"
	"github.com/MKhiriev/mentor-hub/internal/service"
	"github.com/MKhiriev/mentor-hub/internal/store"
	"github.com/MKhiriev/mentor-hub/internal/workers"
	"github.com/MKhiriev/mentor-hub/migrations"
	"github.com/spf13/cobra"
)

func newRootCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mentorctl",
		Short:         "Maintenance utility for the mentor-hub server",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	cmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newMigrateCommand(c))
	cmd.AddCommand(newSeedAdminCommand(c))
	cmd.AddCommand(newPruneTokensCommand(c))
	return cmd
}

func newMigrateCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Schema migration operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err = migrations.MigrateContext(cmd.Context(), db.DB); err != nil {
				return err
			}
			c.printf("migrations applied\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err = migrations.Rollback(cmd.Context(), db.DB); err != nil {
				return err
			}
			c.printf("last migration rolled back\n")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := migrations.Version(cmd.Context(), db.DB)
			if err != nil {
				return err
			}
			c.printf("schema version: %d\n", v)
			return nil
		},
	})

	return cmd
}

func newSeedAdminCommand(c *cli) *cobra.Command {
	var (
		email    string
		fullName string
	)

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Provision an administrator account",
		Long: "Provision a whitelisted administrator account. The owner completes it with " +
			"POST /api/auth/register. An existing account with the same email is promoted to Admin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, db, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			storages := store.NewStorages(db, c.log)
			users := service.NewUserService(storages, events.NewNopPublisher(), c.log)

			admin, created, err := seedAdmin(ctx, users, storages.UserRepository, email, fullName)
			if err != nil {
				return err
			}

			if created {
				c.printf("admin %s provisioned (id %d)\n", admin.Email, admin.UserID)
			} else {
				c.printf("admin %s already present (id %d)\n", admin.Email, admin.UserID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Administrator email")
	cmd.Flags().StringVar(&fullName, "name", "", "Administrator full name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newPruneTokensCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune-tokens",
		Short: "Delete refresh tokens revoked or expired before the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, db, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if retention, _ := cmd.Flags().GetDuration("retention"); retention > 0 {
				cfg.Workers.TokenRetention = retention
			}

			storages := store.NewStorages(db, c.log)
			pruner, err := workers.NewTokenPruner(storages.RefreshTokenRepository, cfg.Workers, nil, c.log)
			if err != nil {
				return err
			}

			deleted, err := pruner.Prune(ctx)
			if err != nil {
				return err
			}
			c.printf("%d refresh tokens deleted\n", deleted)
			return nil
		},
	}

	cmd.Flags().Duration("retention", 0, "Override WORKERS_TOKEN_RETENTION (e.g. 720h)")
	return cmd
}

func versionString() string {
	v := buildVersion
	if v == "" {
		v = "N/A"
	}
	return v + " (" + orNA(buildCommit) + ", " + orNA(buildDate) + ")"
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
