package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/existflow/angple/internal/config"
	"github.com/existflow/angple/internal/logger"
	"github.com/existflow/angple/server"
	"github.com/existflow/angple/server/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	logConfig.FilePath = os.Getenv("LOG_FILE")
	logConfig.Console = true
	if err := logger.Init(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	err := run(config.DefaultServerConfig())
	if err != nil {
		logger.Error("Server stopped", logger.F("error", err))
	}
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

// run serves until the listener fails or a stop signal arrives
func run(cfg config.ServerConfig) error {
	repo, err := openRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	srv, err := server.New(cfg, repo)
	if err != nil {
		_ = repo.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing server", logger.F("error", err))
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Damoang backend starting", logger.F("port", cfg.Port))
		errCh <- srv.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down", logger.F("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openRepository(cfg config.ServerConfig) (store.Repository, error) {
	if cfg.DatabaseURL != "" {
		logger.Info("Using postgres storage")
		return store.OpenPostgres(cfg.DatabaseURL)
	}
	logger.Info("Using file storage", logger.F("dir", cfg.DataDir))
	return store.OpenFile(cfg.DataDir)
}
