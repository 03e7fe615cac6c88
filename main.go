package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/Suraj0791/stockcharts/internal/config"
	"github.com/Suraj0791/stockcharts/internal/engine"
	"github.com/Suraj0791/stockcharts/internal/logger"
	"github.com/Suraj0791/stockcharts/internal/render"
	"github.com/Suraj0791/stockcharts/internal/server"
	"github.com/Suraj0791/stockcharts/internal/storage"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Setup("info", "json")
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	log.Info().
		Str("version", config.GetVersion()).
		Str("port", cfg.Port).
		Str("environment", cfg.Environment).
		Str("storage", cfg.StorageMode).
		Msg("Starting chart dashboard service")

	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot storage")
	}
	defer store.Close()

	sessions := engine.NewManager(engine.Options{
		Entities:       cfg.Entities,
		LoadDelay:      cfg.LoadDelay(),
		ResizeDebounce: cfg.ResizeDebounce(),
		Surface:        render.Surface{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
		Log:            log,
	})

	srv := server.New(cfg, sessions, store, log)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server stopped")
}
