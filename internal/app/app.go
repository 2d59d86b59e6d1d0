// Package app wires configuration into a ready LookupService.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/services"
	"github.com/namefreezers/weather-lookup/internal/weather"
)

// Build constructs the lookup service shared by all binaries. The returned
// cleanup closes the database, if one was opened.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.LookupService, func(), error) {
	fetcher, err := weather.BuildFetcher(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("weather fetcher: %w", err)
	}

	if cfg.DatabaseURL == "" {
		logger.Info("lookup history disabled")
		return services.NewLookupService(fetcher, nil, logger), func() {}, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := repository.OpenDB(dbCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	repo := repository.NewLookupRepository(db, logger)
	if err := repo.Migrate(dbCtx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("lookup history enabled")

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}
	return services.NewLookupService(fetcher, repo, logger), cleanup, nil
}
