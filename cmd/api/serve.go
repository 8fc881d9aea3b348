package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/config"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/database"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository/postgres"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/router"
	"github.com/shushovitJR/Yeti-Repair-backend/pkg/logger"
)

var migrateOnStart bool

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
	addServeFlags(cmd)
	return cmd
}

// addServeFlags is shared by serve and the root, which also serves.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

// bootstrap loads config and the logger shared by every subcommand.
func bootstrap() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg.Env), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}

	if cfg.DB.Instance != "" {
		l.Warn().Str("instance", cfg.DB.Instance).Str("host", cfg.DB.Host).
			Msg("named instance has no postgres equivalent; using the default port")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	pool, err := database.Open(ctx, cfg)
	if err != nil {
		l.Error().Err(err).Msg("db connect failed")
		return err
	}
	defer pool.Close()

	if migrateOnStart {
		if err := database.NewMigrator(pool, l).Up(ctx); err != nil {
			l.Error().Err(err).Msg("migrations failed")
			return err
		}
	}

	// http
	h := router.New(l, postgres.NewStore(pool), cfg, pool.Ping)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		l.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			l.Error().Err(err).Msg("server error")
			return err
		}
	case <-ctx.Done():
	}

	// graceful shutdown
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		l.Warn().Err(err).Msg("shutdown incomplete")
	}
	l.Info().Msg("shutdown complete")
	return nil
}
