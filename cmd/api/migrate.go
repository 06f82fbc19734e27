package main

import (
	"github.com/spf13/cobra"

	"github.com/realtimefeedback/feedback-api/internal/repository"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	for _, sub := range []struct{ use, short string }{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Print the status of every migration"},
	} {
		command := sub.use
		cmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				cfg, log, err := bootstrap(ctx)
				if err != nil {
					return err
				}

				db, err := openDB(ctx, cfg.Database, log)
				if err != nil {
					return err
				}
				defer db.Close()

				return repository.Migrate(ctx, db, log, command)
			},
		})
	}

	return cmd
}
