package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/app"
	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/logging"
	"github.com/namefreezers/weather-lookup/internal/services"
)

func main() {
	// 1) Load config (includes WATCH_CITIES, WATCH_CRON)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Init logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	if len(cfg.WatchCities) == 0 {
		logger.Fatal("WATCH_CITIES is empty, nothing to refresh")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3) Wire up the lookup service
	svc, cleanup, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize lookup service", zap.Error(err))
	}
	defer cleanup()

	// 4) Build cron (standard 5-field, minute resolution)
	c := cron.New()
	_, err = c.AddFunc(cfg.WatchCron, func() {
		refreshCities(ctx, svc, cfg.WatchCities, logger)
	})
	if err != nil {
		logger.Fatal("unable to schedule cron job", zap.String("cronSpec", cfg.WatchCron), zap.Error(err))
	}

	logger.Info("starting scheduler",
		zap.String("cronSpec", cfg.WatchCron),
		zap.Strings("cities", cfg.WatchCities),
	)
	c.Start()

	<-ctx.Done()
	logger.Info("stopping scheduler")
	<-c.Stop().Done()
}

// refreshCities looks up every watched city once, warming the cache and
// recording history. Failures are logged and do not stop the batch.
func refreshCities(ctx context.Context, svc services.LookupService, cities []string, logger *zap.Logger) {
	var ok int
	for _, city := range cities {
		if ctx.Err() != nil {
			return
		}
		if _, err := svc.Lookup(ctx, city); err != nil {
			logger.Warn("scheduled lookup failed", zap.String("city", city), zap.Error(err))
			continue
		}
		ok++
	}
	logger.Info("refreshed watched cities", zap.Int("ok", ok), zap.Int("total", len(cities)))
}
