package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ModeHTTP = "http"
	ModeMock = "mock"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all configuration for the application.
type Config struct {
	// APIURL is the jobs endpoint; the page number is sent as ?page=N.
	APIURL string

	// CollectorMode picks the page source: http or mock.
	CollectorMode string

	UserAgent string

	// RateInterval is the minimum spacing between page requests.
	RateInterval time.Duration

	// HTTPTimeout bounds a page request. Zero leaves it to the caller's context.
	HTTPTimeout time.Duration

	// BookmarkBackend picks the bookmark store: memory, sqlite or redis.
	BookmarkBackend string
	SQLitePath      string
	RedisURL        string

	LogLevel slog.Level
	LogFile  string

	// Port is the dashboard HTTP port.
	Port string

	// LoadThreshold is how many rows from the end of the list trigger the next page.
	LoadThreshold int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIURL:          getenv("JOBFEED_API_URL", "https://testapi.getlokalapp.com/common/jobs"),
		CollectorMode:   strings.ToLower(getenv("COLLECTOR_MODE", ModeHTTP)),
		UserAgent:       getenv("JOBFEED_USER_AGENT", "jobfeed/1.0"),
		BookmarkBackend: strings.ToLower(getenv("BOOKMARK_BACKEND", BackendMemory)),
		SQLitePath:      getenv("BOOKMARK_SQLITE_PATH", "data/bookmarks.db"),
		RedisURL:        getenv("REDIS_URL", "redis://localhost:6379/0"),
		LogFile:         getenv("LOG_FILE", "data/jobfeed.log"),
		Port:            getenv("PORT", "8080"),
	}

	var err error
	if cfg.RateInterval, err = time.ParseDuration(getenv("JOBFEED_RATE_INTERVAL", "500ms")); err != nil {
		return nil, fmt.Errorf("invalid JOBFEED_RATE_INTERVAL: %w", err)
	}
	if cfg.HTTPTimeout, err = time.ParseDuration(getenv("JOBFEED_HTTP_TIMEOUT", "0s")); err != nil {
		return nil, fmt.Errorf("invalid JOBFEED_HTTP_TIMEOUT: %w", err)
	}
	if cfg.RateInterval < 0 || cfg.HTTPTimeout < 0 {
		return nil, fmt.Errorf("durations must not be negative")
	}

	if cfg.LoadThreshold, err = strconv.Atoi(getenv("JOBFEED_LOAD_THRESHOLD", "3")); err != nil {
		return nil, fmt.Errorf("invalid JOBFEED_LOAD_THRESHOLD: %w", err)
	}
	if cfg.LoadThreshold < 1 {
		return nil, fmt.Errorf("JOBFEED_LOAD_THRESHOLD must be at least 1, got %d", cfg.LoadThreshold)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.CollectorMode {
	case ModeHTTP, ModeMock:
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'http' or 'mock')", cfg.CollectorMode)
	}

	switch cfg.BookmarkBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("unknown BOOKMARK_BACKEND: %s (use 'memory', 'sqlite' or 'redis')", cfg.BookmarkBackend)
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
