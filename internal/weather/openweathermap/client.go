package openweathermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/weather/condition"
	"github.com/namefreezers/weather-lookup/internal/weather/types"
)

const maxRedirects = 10

// Client queries the OpenWeatherMap current weather endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client from the loaded configuration.
func NewClient(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is not set")
	}
	return New(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.HTTPTimeout, logger), nil
}

// New returns a Client talking to baseURL (scheme and host, no path).
func New(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return errTooManyRedirects
				}
				return nil
			},
		},
		logger: logger,
	}
}

// responseCode is the body-level "cod" field, which the API sends either as a
// number or as a string depending on the endpoint version.
type responseCode int

func (c *responseCode) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("cod %s: %w", b, err)
	}
	*c = responseCode(n)
	return nil
}

type currentResponse struct {
	Cod  responseCode `json:"cod"`
	Name string       `json:"name"`
	Main struct {
		Temp float64 `json:"temp"` // Kelvin
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
}

// FetchCurrent implements weather.Fetcher. A non-nil error is always a *types.LookupError.
func (c *Client) FetchCurrent(ctx context.Context, city string) (types.Weather, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return types.Weather{}, ErrEmptyCity
	}

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	endpoint := c.baseURL + "/data/2.5/weather?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return types.Weather{}, unclassified(fmt.Errorf("openweathermap: failed to build request: %w", err))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		le := classifyTransport(err)
		c.logger.Warn("openweathermap request failed",
			zap.String("city", city),
			zap.String("kind", string(le.Kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return types.Weather{}, le
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		le := classifyStatus(resp.StatusCode)
		c.logger.Warn("openweathermap returned error status",
			zap.String("city", city),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(le.Kind)),
		)
		return types.Weather{}, le
	}

	var body currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return types.Weather{}, unclassified(fmt.Errorf("openweathermap: JSON decode error: %w", err))
	}
	if body.Cod != http.StatusOK {
		return types.Weather{}, &types.LookupError{
			Kind:       types.KindUnclassified,
			StatusCode: resp.StatusCode,
			Message:    MsgUnexpectedResponse,
			Err:        fmt.Errorf("openweathermap: unexpected cod %d", body.Cod),
		}
	}
	if len(body.Weather) == 0 {
		return types.Weather{}, &types.LookupError{
			Kind:       types.KindUnclassified,
			StatusCode: resp.StatusCode,
			Message:    MsgUnexpectedResponse,
			Err:        errors.New("openweathermap: no weather data in response"),
		}
	}

	w := types.Weather{
		City:          body.Name,
		TemperatureF:  condition.KelvinToFahrenheit(body.Main.Temp),
		Description:   body.Weather[0].Description,
		Emoji:         condition.Emoji(body.Weather[0].ID),
		ConditionCode: body.Weather[0].ID,
	}
	if w.City == "" {
		w.City = city
	}
	c.logger.Debug("openweathermap lookup succeeded",
		zap.String("city", city),
		zap.Float64("temp_f", w.TemperatureF),
		zap.Int("condition", w.ConditionCode),
		zap.Duration("elapsed", time.Since(start)),
	)
	return w, nil
}
