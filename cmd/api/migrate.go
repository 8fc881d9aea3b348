package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/database"
)

var steps int

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
			return m.Down(ctx, steps)
		}),
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
				return m.Up(ctx)
			}),
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: withMigrator(func(ctx context.Context, m *database.Migrator) error {
				return m.Status(ctx)
			}),
		},
	)
	return cmd
}

func withMigrator(fn func(context.Context, *database.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, l, err := bootstrap()
		if err != nil {
			return err
		}
		pool, err := database.Open(cmd.Context(), cfg)
		if err != nil {
			l.Error().Err(err).Msg("db connect failed")
			return err
		}
		defer pool.Close()
		return fn(cmd.Context(), database.NewMigrator(pool, l))
	}
}
