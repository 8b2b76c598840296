package crimelog

import (
	"errors"

	"github.com/campuslogs/crimelog/internal/config"
	"github.com/campuslogs/crimelog/internal/log"
)

// ErrNoDatabase is returned by New when no database was configured.
var ErrNoDatabase = errors.New("no database configured")

// ErrClosed is returned by Client methods after Close.
var ErrClosed = errors.New("client is closed")

// clientConfig holds configuration for Client construction. Defaults come
// from internal/config so the CLI and library agree on them.
type clientConfig struct {
	appConfig config.AppConfig
	logger    *log.Logger
}

func newClientConfig() clientConfig {
	cfg := config.NewAppConfig()
	return clientConfig{
		appConfig: cfg,
		logger:    log.NewLogger(cfg),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores data in a SQLite file at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithDBURL("sqlite:///" + path)
	}
}

// WithPostgres stores data in the PostgreSQL database at the given DSN.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithDBURL(dsn)
	}
}

// WithConfig replaces the whole application config, as loaded by
// config.LoadConfig.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.appConfig = cfg
	}
}

// WithBaseURL points the scraper at a different crime log site, mainly for
// testing against a local fixture server.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithBaseURL(url)
	}
}

// WithFetchConfig tunes retry, pacing, and pagination limits.
func WithFetchConfig(fetch config.FetchConfig) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithFetch(fetch)
	}
}

// WithMappingFile uses the named YAML artifact for reconciliation instead
// of the embedded default mapping.
func WithMappingFile(path string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithMappingFile(path)
	}
}

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
