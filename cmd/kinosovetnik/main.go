package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vmelnikov/kinosovetnik/internal/backend"
	"github.com/vmelnikov/kinosovetnik/internal/catalog"
	"github.com/vmelnikov/kinosovetnik/internal/config"
	"github.com/vmelnikov/kinosovetnik/internal/httpapi"
	"github.com/vmelnikov/kinosovetnik/internal/logging"
	"github.com/vmelnikov/kinosovetnik/internal/observability"
	"github.com/vmelnikov/kinosovetnik/internal/snapshot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is normal outside local development.
		logging.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("config error")
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	snapshots, err := snapshot.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("snapshot store init failed")
	}
	defer snapshots.Close()

	var sender backend.Sender = backend.NewClient(cfg.BackendBaseURL, cfg.BackendAnswerField, cfg.BackendTimeout)
	if cfg.BreakerEnabled {
		sender = backend.NewBreakerClient(sender)
	}

	api := httpapi.New(cfg, sender, catalog.New(), snapshots, metrics)
	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		logging.Info().Str("addr", cfg.BindAddr).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logging.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
		_ = httpServer.Close()
	}

	logging.Info().Msg("shutdown complete")
}
