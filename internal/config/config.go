package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all the environment‐driven settings for the application.
// It is loaded once at start-up and treated as read-only afterwards.
type Config struct {
	// OpenWeatherMap
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	HTTPTimeout        time.Duration

	// API
	Port string

	// Redis cache (optional, disabled when RedisAddr is empty)
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Lookup history (optional, disabled when DatabaseURL is empty)
	DatabaseURL string

	// Scheduler
	WatchCities []string
	WatchCron   string

	LogLevel string
}

const (
	DefaultBaseURL     = "https://api.openweathermap.org"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultCacheTTL    = 5 * time.Minute
	DefaultWatchCron   = "*/15 * * * *"
)

// Load reads an optional .env file, then reads and validates the environment,
// applying defaults where appropriate. It returns an error if a required
// variable is missing or a value is malformed.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	apiKey := getenv("OPENWEATHER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	baseURL := strings.TrimRight(getenv("OPENWEATHER_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout, err := durationOr(getenv, "HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	port := getenv("PORT")
	if port == "" {
		port = "8080"
	}

	cacheTTL, err := durationOr(getenv, "CACHE_TTL", DefaultCacheTTL)
	if err != nil {
		return nil, err
	}

	var cities []string
	for _, c := range strings.Split(getenv("WATCH_CITIES"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}

	watchCron := getenv("WATCH_CRON")
	if watchCron == "" {
		watchCron = DefaultWatchCron
	}

	logLevel := getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		OpenWeatherAPIKey:  apiKey,
		OpenWeatherBaseURL: baseURL,
		HTTPTimeout:        timeout,

		Port: port,

		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		CacheTTL:      cacheTTL,

		DatabaseURL: getenv("DATABASE_URL"),

		WatchCities: cities,
		WatchCron:   watchCron,

		LogLevel: logLevel,
	}, nil
}

func durationOr(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, raw)
	}
	return d, nil
}
