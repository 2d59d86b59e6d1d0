package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/app"
	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/handlers"
	"github.com/namefreezers/weather-lookup/internal/logging"
)

func main() {
	// 1) Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Initialize structured logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3) Build the lookup service (client, optional cache and history)
	svc, cleanup, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize lookup service", zap.Error(err))
	}
	defer cleanup()

	// 4) Start HTTP server
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.NewRouter(svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("starting API server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
