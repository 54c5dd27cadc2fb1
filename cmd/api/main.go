package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delicassy/internal/config"
	"delicassy/internal/logger"
	"delicassy/internal/seed"
	"delicassy/internal/server"
	"delicassy/internal/store"

	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func newLogger(cfg *config.Config) *zap.Logger {
	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return log
}

func serve() error {
	cfg := config.Load()

	log := newLogger(cfg)
	defer log.Sync()

	log.Info("Starting Delicassy API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
	)

	// A store that cannot connect still yields a handle; the API then
	// answers 503 on data routes
	s := store.Open(context.Background(), cfg, log)

	srv, err := server.NewServer(cfg, log, s)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if cfg.Store.SeedFile != "" && store.IsConnected(s) {
		fixture, err := seed.LoadFile(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		if _, err := seed.Apply(context.Background(), srv.Services(), fixture, log); err != nil {
			log.Error("Seeding failed", zap.String("file", cfg.Store.SeedFile), zap.Error(err))
		}
	}

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
