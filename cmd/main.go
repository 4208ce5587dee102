package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bizcard-service/internal/model"
	"bizcard-service/internal/server"
	"bizcard-service/pkg/config"
	"bizcard-service/pkg/database"
	"bizcard-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	if err := run(cfg, log); err != nil {
		log.Error("Service exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run opens the database and serves until a signal arrives or the server fails.
// Every resource it opens is released before it returns.
func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting business card service...", zap.String("environment", cfg.Server.Env))

	db, err := database.Open(&cfg.DB)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	if err := database.Migrate(db, model.Models()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info("Database connection established", zap.String("driver", cfg.DB.Driver))

	srv := server.New(cfg, db, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped unexpectedly: %w", err)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
