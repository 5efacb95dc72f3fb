package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// DefaultCacheTTL is the uniform freshness window for every cached
// resource collection.
const DefaultCacheTTL = 5 * time.Minute

// Config stores runtime configuration for the client.
type Config struct {
	AppEnv      string
	ServiceName string

	APIBaseURL    string
	APITimeout    time.Duration
	APIMaxRetries int

	CacheEnabled bool
	CacheTTL     time.Duration

	CircuitEnabled        bool
	CircuitFailureCount   int
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int

	LogLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	apiBaseURL := strings.TrimSpace(getEnv("KEGEL_API_URL", ""))
	if apiBaseURL == "" {
		return Config{}, fmt.Errorf("KEGEL_API_URL is required")
	}

	apiTimeout, err := getEnvAsDuration("KEGEL_API_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse KEGEL_API_TIMEOUT: %w", err)
	}

	apiMaxRetries, err := getEnvAsInt("KEGEL_API_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse KEGEL_API_MAX_RETRIES: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}

	cacheTTL, err := getEnvAsDuration("CACHE_TTL", DefaultCacheTTL)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if !cacheEnabled {
		cacheTTL = 0
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("KEGEL_API_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KEGEL_API_CIRCUIT_ENABLED: %w", err)
	}

	circuitFailureCount, err := getEnvAsInt("KEGEL_API_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse KEGEL_API_CIRCUIT_FAILURE_COUNT: %w", err)
	}

	circuitOpenTimeout, err := getEnvAsDuration("KEGEL_API_CIRCUIT_OPEN_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse KEGEL_API_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}

	circuitHalfOpenMaxReq, err := getEnvAsInt("KEGEL_API_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse KEGEL_API_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	return Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("SERVICE_NAME", "kegelsim-client"),
		APIBaseURL:            apiBaseURL,
		APITimeout:            apiTimeout,
		APIMaxRetries:         apiMaxRetries,
		CacheEnabled:          cacheEnabled,
		CacheTTL:              cacheTTL,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		LogLevel:              parseLogLevel(getEnv("LOG_LEVEL", "info")),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
