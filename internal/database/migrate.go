package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrator applies the embedded goose migrations through the pgx pool.
type Migrator struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewMigrator(pool *pgxpool.Pool, log zerolog.Logger) *Migrator {
	return &Migrator{pool: pool, log: log.With().Str("component", "migrate").Logger()}
}

func (m *Migrator) run(ctx context.Context, fn func(p *goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys, goose.WithVerbose(false))
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	return fn(p)
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(p *goose.Provider) error {
		results, err := p.Up(ctx)
		for _, r := range results {
			m.log.Info().Str("source", r.Source.Path).Dur("took", r.Duration).Msg("applied migration")
		}
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		return nil
	})
}

func (m *Migrator) Down(ctx context.Context, steps int) error {
	return m.run(ctx, func(p *goose.Provider) error {
		for i := 0; i < steps; i++ {
			r, err := p.Down(ctx)
			if errors.Is(err, goose.ErrNoNextVersion) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("migrate down: %w", err)
			}
			m.log.Info().Str("source", r.Source.Path).Msg("rolled back migration")
		}
		return nil
	})
}

func (m *Migrator) Status(ctx context.Context) error {
	return m.run(ctx, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, s := range statuses {
			m.log.Info().
				Int64("version", s.Source.Version).
				Str("source", s.Source.Path).
				Str("state", string(s.State)).
				Msg("migration")
		}
		return nil
	})
}
