package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/realtimefeedback/feedback-api/internal/config"
	"github.com/realtimefeedback/feedback-api/internal/logger"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

var envFile string

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "feedback-api",
		Short:         "Realtime event feedback API",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Serve when no subcommand is given.
		RunE: serve.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd())
	return root
}

// bootstrap loads the dotenv file, the configuration and the logger shared by
// every subcommand.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	envErr := godotenv.Load(envFile)

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	if envErr != nil {
		log.Debug().Str("file", envFile).Msg("no dotenv file loaded, using environment variables")
	}
	return cfg, log, nil
}

func openDB(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*sql.DB, error) {
	db, err := repository.NewDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Msg("database connected")
	return db, nil
}
