package config

import (
	"reflect"
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"OPENWEATHER_API_KEY": "k"}))
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.OpenWeatherBaseURL != DefaultBaseURL {
		t.Errorf("OpenWeatherBaseURL = %q, want %q", cfg.OpenWeatherBaseURL, DefaultBaseURL)
	}
	if cfg.HTTPTimeout != DefaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, DefaultHTTPTimeout)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.RedisAddr != "" || cfg.DatabaseURL != "" {
		t.Errorf("optional backends should be disabled by default, got redis=%q db=%q", cfg.RedisAddr, cfg.DatabaseURL)
	}
	if cfg.WatchCron != DefaultWatchCron {
		t.Errorf("WatchCron = %q, want %q", cfg.WatchCron, DefaultWatchCron)
	}
	if cfg.WatchCities != nil {
		t.Errorf("WatchCities = %v, want nil", cfg.WatchCities)
	}
}

func TestFromEnv_MissingKey(t *testing.T) {
	if _, err := FromEnv(envOf(nil)); err == nil {
		t.Fatal("FromEnv() expected error for missing OPENWEATHER_API_KEY")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"OPENWEATHER_API_KEY":  "k",
		"OPENWEATHER_BASE_URL": "http://localhost:9999/",
		"HTTP_TIMEOUT":         "2s",
		"CACHE_TTL":            "1m",
		"REDIS_ADDR":           "redis:6379",
		"WATCH_CITIES":         " London, ,Paris ",
	}))
	if err != nil {
		t.Fatalf("FromEnv() unexpected error: %v", err)
	}
	if cfg.OpenWeatherBaseURL != "http://localhost:9999" {
		t.Errorf("OpenWeatherBaseURL = %q", cfg.OpenWeatherBaseURL)
	}
	if cfg.HTTPTimeout != 2*time.Second {
		t.Errorf("HTTPTimeout = %v, want 2s", cfg.HTTPTimeout)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if want := []string{"London", "Paris"}; !reflect.DeepEqual(cfg.WatchCities, want) {
		t.Errorf("WatchCities = %v, want %v", cfg.WatchCities, want)
	}
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0s"} {
		_, err := FromEnv(envOf(map[string]string{"OPENWEATHER_API_KEY": "k", "HTTP_TIMEOUT": v}))
		if err == nil {
			t.Errorf("FromEnv(HTTP_TIMEOUT=%q) expected error", v)
		}
	}
}
