package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"catalyst/internal/engine"
	"catalyst/internal/http/handlers"
	"catalyst/internal/http/httpapi"
	"catalyst/internal/infra"
	"catalyst/internal/providers/suggest"
	"catalyst/internal/storage"
)

func main() {
	// Muat .env (opsional)
	_ = godotenv.Load()

	// Konfigurasi & logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	// Provider saran grafik
	suggester := suggest.NewFromConfig(cfg, logger)

	// Arsip unggahan (opsional)
	var archive *storage.FileStore
	if cfg.UploadArchiveDir != "" {
		archive, err = storage.NewFileStore(cfg.UploadArchiveDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare archive directory")
		}
	}

	eng := engine.New(engine.Options{
		NumericImputation: cfg.NumericImputation,
		TextLengthMin:     cfg.TextLengthMin,
		BarTopCategories:  cfg.BarTopCategories,
		TimeSeriesMax:     cfg.TimeSeriesMax,
		PreviewRows:       cfg.PreviewRows,
		Suggester:         suggester,
		SuggestTimeout:    cfg.SuggestTimeout,
		Logger:            &logger,
	})

	app := handlers.NewApp(eng, cfg, logger, archive)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	// Start async
	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
