// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Default configuration values.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultLogLevel        = "INFO"
	DefaultBaseURL         = "https://www.police.psu.edu/daily-crime-log"
	DefaultDays            = 30
	DefaultMaxPages        = 100
	DefaultEmptyPageLimit  = 3
	DefaultFetchTimeout    = 30 * time.Second
	DefaultFetchRetries    = 3
	DefaultFetchDelay      = 2 * time.Second
	DefaultRequestInterval = 1 * time.Second
	DefaultBackoffFactor   = 2.0
	DefaultExportSubdir    = "exports"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// FetchConfig configures the crime-log fetcher.
type FetchConfig struct {
	timeout         time.Duration
	maxRetries      int
	initialDelay    time.Duration
	backoffFactor   float64
	requestInterval time.Duration
	maxPages        int
	emptyPageLimit  int
}

// NewFetchConfig creates a FetchConfig with defaults.
func NewFetchConfig() FetchConfig {
	return FetchConfig{
		timeout:         DefaultFetchTimeout,
		maxRetries:      DefaultFetchRetries,
		initialDelay:    DefaultFetchDelay,
		backoffFactor:   DefaultBackoffFactor,
		requestInterval: DefaultRequestInterval,
		maxPages:        DefaultMaxPages,
		emptyPageLimit:  DefaultEmptyPageLimit,
	}
}

// Timeout returns the per-request timeout.
func (f FetchConfig) Timeout() time.Duration { return f.timeout }

// MaxRetries returns the maximum retry count for transient failures.
func (f FetchConfig) MaxRetries() int { return f.maxRetries }

// InitialDelay returns the initial retry delay.
func (f FetchConfig) InitialDelay() time.Duration { return f.initialDelay }

// BackoffFactor returns the retry backoff multiplier.
func (f FetchConfig) BackoffFactor() float64 { return f.backoffFactor }

// RequestInterval returns the polite delay between page requests.
func (f FetchConfig) RequestInterval() time.Duration { return f.requestInterval }

// MaxPages returns the pagination hard stop.
func (f FetchConfig) MaxPages() int { return f.maxPages }

// EmptyPageLimit returns how many consecutive empty pages end a campus walk.
func (f FetchConfig) EmptyPageLimit() int { return f.emptyPageLimit }

// WithTimeout returns a copy with the given timeout.
func (f FetchConfig) WithTimeout(d time.Duration) FetchConfig {
	f.timeout = d
	return f
}

// WithMaxRetries returns a copy with the given retry count.
func (f FetchConfig) WithMaxRetries(n int) FetchConfig {
	f.maxRetries = n
	return f
}

// WithInitialDelay returns a copy with the given initial retry delay.
func (f FetchConfig) WithInitialDelay(d time.Duration) FetchConfig {
	f.initialDelay = d
	return f
}

// WithBackoffFactor returns a copy with the given backoff multiplier.
// Factors at or below zero keep the default.
func (f FetchConfig) WithBackoffFactor(factor float64) FetchConfig {
	if factor > 0 {
		f.backoffFactor = factor
	}
	return f
}

// WithRequestInterval returns a copy with the given inter-request delay.
func (f FetchConfig) WithRequestInterval(d time.Duration) FetchConfig {
	f.requestInterval = d
	return f
}

// WithMaxPages returns a copy with the given pagination limit.
func (f FetchConfig) WithMaxPages(n int) FetchConfig {
	f.maxPages = n
	return f
}

// WithEmptyPageLimit returns a copy with the given empty-page stop.
func (f FetchConfig) WithEmptyPageLimit(n int) FetchConfig {
	f.emptyPageLimit = n
	return f
}

// AppConfig is the resolved application configuration.
type AppConfig struct {
	host        string
	port        int
	dataDir     string
	dbURL       string
	baseURL     string
	logLevel    string
	logFormat   LogFormat
	mappingFile string
	exportDir   string
	fetch       FetchConfig
}

// NewAppConfig creates an AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := defaultDataDir()
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		dataDir:   dataDir,
		dbURL:     defaultDBURL(dataDir),
		baseURL:   DefaultBaseURL,
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
		exportDir: filepath.Join(dataDir, DefaultExportSubdir),
		fetch:     NewFetchConfig(),
	}
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address string.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// BaseURL returns the crime-log source URL.
func (c AppConfig) BaseURL() string { return c.baseURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// MappingFile returns the reconciliation mapping artifact path, or empty to
// use the embedded default.
func (c AppConfig) MappingFile() string { return c.mappingFile }

// ExportDir returns the CSV export directory.
func (c AppConfig) ExportDir() string { return c.exportDir }

// Fetch returns the fetcher configuration.
func (c AppConfig) Fetch() FetchConfig { return c.fetch }

// WithHost returns a copy with the given host.
func (c AppConfig) WithHost(host string) AppConfig {
	c.host = host
	return c
}

// WithPort returns a copy with the given port.
func (c AppConfig) WithPort(port int) AppConfig {
	c.port = port
	return c
}

// WithDataDir returns a copy with the given data directory. The database URL
// and export directory follow unless they were set explicitly.
func (c AppConfig) WithDataDir(dir string) AppConfig {
	if c.dbURL == defaultDBURL(c.dataDir) {
		c.dbURL = defaultDBURL(dir)
	}
	if c.exportDir == filepath.Join(c.dataDir, DefaultExportSubdir) {
		c.exportDir = filepath.Join(dir, DefaultExportSubdir)
	}
	c.dataDir = dir
	return c
}

// WithDBURL returns a copy with the given database URL.
func (c AppConfig) WithDBURL(url string) AppConfig {
	c.dbURL = url
	return c
}

// WithBaseURL returns a copy with the given source URL.
func (c AppConfig) WithBaseURL(url string) AppConfig {
	c.baseURL = url
	return c
}

// WithLogLevel returns a copy with the given log level.
func (c AppConfig) WithLogLevel(level string) AppConfig {
	c.logLevel = level
	return c
}

// WithLogFormat returns a copy with the given log format.
func (c AppConfig) WithLogFormat(format LogFormat) AppConfig {
	c.logFormat = format
	return c
}

// WithMappingFile returns a copy with the given mapping artifact path.
func (c AppConfig) WithMappingFile(path string) AppConfig {
	c.mappingFile = path
	return c
}

// WithExportDir returns a copy with the given export directory.
func (c AppConfig) WithExportDir(dir string) AppConfig {
	c.exportDir = dir
	return c
}

// WithFetch returns a copy with the given fetcher configuration.
func (c AppConfig) WithFetch(f FetchConfig) AppConfig {
	c.fetch = f
	return c
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// EnsureExportDir creates the export directory if it does not exist.
func (c AppConfig) EnsureExportDir() error {
	return os.MkdirAll(c.exportDir, 0o755)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crimelog"
	}
	return filepath.Join(home, ".crimelog")
}

func defaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, "crimelog.db")
}

// LoadConfig loads configuration from a .env file (optional) and environment
// variables. The .env file is loaded first if it exists, then environment
// variables override.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}

	return envCfg.ToAppConfig(), nil
}
