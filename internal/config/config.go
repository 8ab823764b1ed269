package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8090"
	defaultDirectoryURL   = "http://localhost:8081"
	defaultLiveFeedPath   = "/ws"
	defaultLiveFeedTopic  = "/topic/devices/changes"
	defaultReconnectDelay = 2 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Config stores runtime settings loaded from environment variables.
type Config struct {
	HTTPAddr           string
	DirectoryBaseURL   string
	LiveFeedURL        string
	LiveFeedTopic      string
	LiveReconnectDelay time.Duration
	RequestTimeout     time.Duration
	LogLevel           slog.Level
}

// Load builds Config from environment variables using stable defaults.
// The live feed endpoint derives from the directory base URL unless set
// explicitly.
func Load() Config {
	base := strings.TrimSuffix(getenv("DIRECTORY_BASE_URL", defaultDirectoryURL), "/")
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", defaultHTTPAddr),
		DirectoryBaseURL:   base,
		LiveFeedURL:        getenv("LIVE_FEED_URL", base+defaultLiveFeedPath),
		LiveFeedTopic:      getenv("LIVE_FEED_TOPIC", defaultLiveFeedTopic),
		LiveReconnectDelay: parseDuration("LIVE_RECONNECT_DELAY", defaultReconnectDelay),
		RequestTimeout:     parseDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		LogLevel:           parseLogLevel(getenv("LOG_LEVEL", "info")),
	}
}

func getenv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
