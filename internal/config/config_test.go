package config

import (
	"strings"
	"testing"
	"time"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Host() != DefaultHost {
		t.Errorf("Host() = %q", cfg.Host())
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("Port() = %d", cfg.Port())
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q", cfg.BaseURL())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat() = %q", cfg.LogFormat())
	}
	if !strings.HasPrefix(cfg.DBURL(), "sqlite:///") {
		t.Errorf("DBURL() = %q, want sqlite default", cfg.DBURL())
	}
	if cfg.Fetch().EmptyPageLimit() != DefaultEmptyPageLimit {
		t.Errorf("EmptyPageLimit() = %d", cfg.Fetch().EmptyPageLimit())
	}
}

func TestAppConfig_WithersDoNotMutate(t *testing.T) {
	cfg := NewAppConfig()
	modified := cfg.WithHost("127.0.0.1").WithPort(9000)

	if cfg.Host() != DefaultHost || cfg.Port() != DefaultPort {
		t.Error("original config was mutated")
	}
	if modified.Host() != "127.0.0.1" || modified.Port() != 9000 {
		t.Errorf("override lost: %s:%d", modified.Host(), modified.Port())
	}
}

func TestFetchConfig_Withers(t *testing.T) {
	fetch := NewFetchConfig().
		WithTimeout(5 * time.Second).
		WithMaxRetries(1).
		WithRequestInterval(0).
		WithMaxPages(2).
		WithEmptyPageLimit(1)

	if fetch.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v", fetch.Timeout())
	}
	if fetch.MaxRetries() != 1 {
		t.Errorf("MaxRetries() = %d", fetch.MaxRetries())
	}
	if fetch.MaxPages() != 2 {
		t.Errorf("MaxPages() = %d", fetch.MaxPages())
	}

	// Defaults untouched on a fresh value.
	if NewFetchConfig().MaxRetries() != DefaultFetchRetries {
		t.Error("defaults should be independent of withers")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("BASE_URL", "http://localhost:8081/crime-log")
	t.Setenv("FETCH_MAX_PAGES", "7")
	t.Setenv("FETCH_BACKOFF_FACTOR", "3.5")

	env, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	cfg := env.ToAppConfig()

	if cfg.Port() != 9999 {
		t.Errorf("Port() = %d", cfg.Port())
	}
	if cfg.LogFormat() != LogFormatJSON {
		t.Errorf("LogFormat() = %q", cfg.LogFormat())
	}
	if cfg.BaseURL() != "http://localhost:8081/crime-log" {
		t.Errorf("BaseURL() = %q", cfg.BaseURL())
	}
	if cfg.Fetch().MaxPages() != 7 {
		t.Errorf("MaxPages() = %d", cfg.Fetch().MaxPages())
	}
	if cfg.Fetch().BackoffFactor() != 3.5 {
		t.Errorf("BackoffFactor() = %v", cfg.Fetch().BackoffFactor())
	}
}
