package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwaltman/replen/pkg/application/services/planning"
	"github.com/cwaltman/replen/pkg/domain/services"
	"github.com/cwaltman/replen/pkg/infrastructure/config"
	"github.com/cwaltman/replen/pkg/infrastructure/repositories/sqldb"
	"github.com/cwaltman/replen/pkg/infrastructure/runlog"
	"github.com/cwaltman/replen/pkg/interfaces/httpapi"
)

// runHistoryCapacity bounds the in-memory run history exposed on /api/v1/runs
const runHistoryCapacity = 100

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)

	store, err := sqldb.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal().Err(err).Str("dsn", cfg.DatabaseDSN).Msg("failed to open database")
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Bootstrap(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap database")
	}

	planner := planning.NewServiceWithConfig(
		store.SKUs(),
		store.Policies(),
		store.Inventory(),
		store.Forecasts(),
		services.Clock(time.Now),
		logger,
		planning.Config{SnapshotLookbackWeeks: cfg.SnapshotLookbackWeeks},
	)

	server := httpapi.NewServer(planner, store.Policies(), runlog.NewStore(runHistoryCapacity), logger, httpapi.Config{
		JWTSecret:           cfg.JWTSecret,
		DefaultHorizonWeeks: cfg.DefaultHorizonWeeks,
		Production:          cfg.IsProduction(),
	})

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info().
		Str("addr", addr).
		Str("environment", cfg.Environment).
		Bool("mutationEnabled", cfg.JWTSecret != "").
		Msg("replenishment server starting")

	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	if !cfg.IsProduction() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger
}
