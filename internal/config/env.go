package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the reports server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the reports server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.crimelog
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/crimelog.db
	DBURL string `envconfig:"DB_URL"`

	// BaseURL is the daily crime log source URL.
	// Env: BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// MappingFile is the path to the campus-code reconciliation artifact.
	// Env: MAPPING_FILE (default: embedded mapping)
	MappingFile string `envconfig:"MAPPING_FILE"`

	// ExportDir is the directory CSV exports are written to.
	// Env: EXPORT_DIR (default: {data_dir}/exports)
	ExportDir string `envconfig:"EXPORT_DIR"`

	// Fetch configures the HTTP fetcher.
	Fetch FetchEnv `envconfig:"FETCH"`
}

// FetchEnv holds environment configuration for the fetcher.
type FetchEnv struct {
	// TimeoutSeconds is the per-request timeout in seconds.
	// Env: FETCH_TIMEOUT_SECONDS (default: 30)
	TimeoutSeconds float64 `envconfig:"TIMEOUT_SECONDS" default:"30"`

	// MaxRetries is the maximum number of retries for transient failures.
	// Env: FETCH_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`

	// InitialDelaySeconds is the initial retry delay in seconds.
	// Env: FETCH_INITIAL_DELAY_SECONDS (default: 2.0)
	InitialDelaySeconds float64 `envconfig:"INITIAL_DELAY_SECONDS" default:"2.0"`

	// BackoffFactor is the retry backoff multiplier.
	// Env: FETCH_BACKOFF_FACTOR (default: 2.0)
	BackoffFactor float64 `envconfig:"BACKOFF_FACTOR" default:"2.0"`

	// RequestIntervalSeconds is the polite delay between page requests.
	// Env: FETCH_REQUEST_INTERVAL_SECONDS (default: 1.0)
	RequestIntervalSeconds float64 `envconfig:"REQUEST_INTERVAL_SECONDS" default:"1.0"`

	// MaxPages is the pagination hard stop per campus.
	// Env: FETCH_MAX_PAGES (default: 100)
	MaxPages int `envconfig:"MAX_PAGES" default:"100"`

	// EmptyPageLimit stops a campus walk after this many consecutive
	// pages without incidents.
	// Env: FETCH_EMPTY_PAGE_LIMIT (default: 3)
	EmptyPageLimit int `envconfig:"EMPTY_PAGE_LIMIT" default:"3"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts the environment configuration to an AppConfig,
// filling in defaults for unset values.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.DataDir != "" {
		cfg = cfg.WithDataDir(e.DataDir)
	}
	if e.DBURL != "" {
		cfg = cfg.WithDBURL(e.DBURL)
	}
	if e.BaseURL != "" {
		cfg = cfg.WithBaseURL(e.BaseURL)
	}
	if e.MappingFile != "" {
		cfg = cfg.WithMappingFile(e.MappingFile)
	}
	if e.ExportDir != "" {
		cfg = cfg.WithExportDir(e.ExportDir)
	}

	cfg = cfg.WithHost(e.Host).
		WithPort(e.Port).
		WithLogLevel(strings.ToUpper(e.LogLevel)).
		WithLogFormat(parseLogFormat(e.LogFormat))

	fetch := NewFetchConfig().
		WithTimeout(secondsToDuration(e.Fetch.TimeoutSeconds, DefaultFetchTimeout)).
		WithMaxRetries(e.Fetch.MaxRetries).
		WithInitialDelay(secondsToDuration(e.Fetch.InitialDelaySeconds, DefaultFetchDelay)).
		WithBackoffFactor(e.Fetch.BackoffFactor).
		WithRequestInterval(secondsToDuration(e.Fetch.RequestIntervalSeconds, DefaultRequestInterval)).
		WithMaxPages(e.Fetch.MaxPages).
		WithEmptyPageLimit(e.Fetch.EmptyPageLimit)

	return cfg.WithFetch(fetch)
}

func parseLogFormat(s string) LogFormat {
	if strings.EqualFold(s, string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

func secondsToDuration(seconds float64, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds * float64(time.Second))
}
