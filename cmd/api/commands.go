package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"delicassy/internal/config"
	"delicassy/internal/database"
	"delicassy/internal/schema"
	"delicassy/internal/seed"
	"delicassy/internal/service"
	"delicassy/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newRootCommand() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "delicassy",
		Short:        "Delicassy storefront API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				return nil
			}
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file first")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		newMigrateCommand(),
		newSeedCommand(),
		newSchemaCommand(),
	)

	return root
}

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres document schema",
	}

	run := func(action func(svc *database.Service, log *zap.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			svc, err := database.New(ctx, database.DSN(cfg.Store.URL, cfg.Database))
			if err != nil {
				return err
			}
			defer svc.Close()

			return action(svc, log)
		}
	}

	migrate.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: run(func(svc *database.Service, log *zap.Logger) error {
				return database.RunMigrations(svc.DB(), log)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print migration status",
			Args:  cobra.NoArgs,
			RunE: run(func(svc *database.Service, log *zap.Logger) error {
				return database.GetMigrationStatus(svc.DB())
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: run(func(svc *database.Service, log *zap.Logger) error {
				return database.RollbackMigration(svc.DB(), log)
			}),
		},
	)

	return migrate
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load a YAML fixture into the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)
			defer log.Sync()

			path := cfg.Store.SeedFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no seed file given and STORE_SEED_FILE is not set")
			}

			fixture, err := seed.LoadFile(path)
			if err != nil {
				return err
			}

			s := store.Open(cmd.Context(), cfg, log)
			defer s.Close(context.Background())
			if !store.IsConnected(s) {
				return s.Ping(cmd.Context())
			}

			services := service.New(s, nil, cfg.JWT.Secret, time.Duration(cfg.JWT.AccessExpiry)*time.Minute, log)
			summary, err := seed.Apply(cmd.Context(), services, fixture, log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d categories, %d products, %d reviews, %d users (%d skipped)\n",
				summary.Categories, summary.Products, summary.Reviews, summary.Users, summary.Skipped)
			return nil
		},
	}
}

func newSchemaCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the declared record shapes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeSchema(cmd.OutOrStdout(), schema.Default(), format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")

	return cmd
}

func writeSchema(w io.Writer, registry *schema.Registry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(registry.All())
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(registry.All()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
