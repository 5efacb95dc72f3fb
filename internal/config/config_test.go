package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresAPIURL(t *testing.T) {
	t.Setenv("KEGEL_API_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when KEGEL_API_URL is unset")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("KEGEL_API_URL", "http://localhost:8080")
	t.Setenv("APP_ENV", "")
	t.Setenv("CACHE_ENABLED", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("KEGEL_API_MAX_RETRIES", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("AppEnv = %q, want %q", cfg.AppEnv, EnvDev)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != DefaultCacheTTL {
		t.Fatalf("cache defaults = enabled %v ttl %v, want enabled true ttl %v", cfg.CacheEnabled, cfg.CacheTTL, DefaultCacheTTL)
	}
	if cfg.APIMaxRetries != 2 {
		t.Fatalf("APIMaxRetries = %d, want 2", cfg.APIMaxRetries)
	}
	if !cfg.CircuitEnabled || cfg.CircuitFailureCount != 5 {
		t.Fatalf("circuit defaults = enabled %v failures %d", cfg.CircuitEnabled, cfg.CircuitFailureCount)
	}
}

func TestLoad_DisabledCacheZeroesTTL(t *testing.T) {
	t.Setenv("KEGEL_API_URL", "http://localhost:8080")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "10m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheTTL != 0 {
		t.Fatalf("CacheTTL = %v, want 0 with cache disabled", cfg.CacheTTL)
	}
}

func TestLoad_CustomTTL(t *testing.T) {
	t.Setenv("KEGEL_API_URL", "http://localhost:8080")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("CacheTTL = %v, want 90s", cfg.CacheTTL)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string]struct {
		key   string
		value string
	}{
		"app env":     {"APP_ENV", "sandbox"},
		"cache ttl":   {"CACHE_TTL", "five minutes"},
		"max retries": {"KEGEL_API_MAX_RETRIES", "many"},
		"cache flag":  {"CACHE_ENABLED", "yep"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("KEGEL_API_URL", "http://localhost:8080")
			t.Setenv(tc.key, tc.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.value)
			}
		})
	}
}
