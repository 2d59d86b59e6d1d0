package weather

import (
	"context"

	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

// Fetcher looks up current weather for a city. Implementations return a
// *types.LookupError on failure.
type Fetcher interface {
	FetchCurrent(ctx context.Context, city string) (types.Weather, error)
}

// FetcherFunc adapts a plain function to Fetcher.
type FetcherFunc func(ctx context.Context, city string) (types.Weather, error)

func (f FetcherFunc) FetchCurrent(ctx context.Context, city string) (types.Weather, error) {
	return f(ctx, city)
}
