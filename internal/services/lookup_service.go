package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/weather"
	"github.com/namefreezers/weather-lookup/internal/weather/openweathermap"
	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

// ErrHistoryDisabled is returned by History when no database is configured.
var ErrHistoryDisabled = errors.New("lookup history is not enabled")

// LookupService is the single entry point every front-end goes through.
type LookupService interface {
	// Lookup returns the weather for city, or a *types.LookupError.
	Lookup(ctx context.Context, city string) (types.Weather, error)
	History(ctx context.Context, limit int) ([]repository.Lookup, error)
}

type lookupService struct {
	fetcher weather.Fetcher
	history repository.LookupRepository // nil when disabled
	now     func() time.Time
	logger  *zap.Logger
}

// NewLookupService wires up service dependencies. history may be nil.
func NewLookupService(fetcher weather.Fetcher, history repository.LookupRepository, logger *zap.Logger) LookupService {
	return &lookupService{fetcher: fetcher, history: history, now: time.Now, logger: logger}
}

func (s *lookupService) Lookup(ctx context.Context, city string) (types.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return types.Weather{}, openweathermap.ErrEmptyCity
	}

	w, err := s.fetcher.FetchCurrent(ctx, city)
	if err != nil {
		le := types.AsLookupError(err)
		s.logger.Info("weather lookup failed",
			zap.String("city", city),
			zap.String("kind", string(le.Kind)),
			zap.Int("status", le.StatusCode),
			zap.Error(le.Err),
		)
		s.record(ctx, repository.Lookup{
			City:         city,
			ErrorKind:    string(le.Kind),
			ErrorMessage: le.Message,
		})
		return types.Weather{}, le
	}

	s.logger.Info("weather lookup succeeded",
		zap.String("city", city),
		zap.Float64("temp_f", w.TemperatureF),
		zap.String("desc", w.Description),
	)
	s.record(ctx, repository.Lookup{
		City:          city,
		TemperatureF:  sql.NullFloat64{Float64: w.TemperatureF, Valid: true},
		Description:   w.Description,
		Emoji:         w.Emoji,
		ConditionCode: sql.NullInt32{Int32: int32(w.ConditionCode), Valid: true},
	})
	return w, nil
}

// record stores the outcome; failures are logged and never surface to the caller.
func (s *lookupService) record(ctx context.Context, l repository.Lookup) {
	if s.history == nil {
		return
	}
	l.CreatedAt = s.now().UTC()
	if _, err := s.history.Record(ctx, l); err != nil {
		s.logger.Warn("failed to record lookup", zap.String("city", l.City), zap.Error(err))
	}
}

func (s *lookupService) History(ctx context.Context, limit int) ([]repository.Lookup, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	return s.history.Recent(ctx, limit)
}
