package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartsplit-app/smartsplit-backend/internal/api"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/config"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/logging"
	"github.com/smartsplit-app/smartsplit-backend/internal/infrastructure/storage"
)

// RunServe runs the API server until SIGINT/SIGTERM.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	port := cfg.Server.Port
	if flags.Port != 0 {
		port = flags.Port
	}

	apiCfg := api.Config{
		Port:            port,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		DefaultCurrency: cfg.Server.DefaultCurrency,
	}

	server := api.NewServer(apiCfg, store, logger, nil)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
