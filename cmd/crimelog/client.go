package main

import (
	"fmt"

	"github.com/campuslogs/crimelog"
	"github.com/campuslogs/crimelog/internal/config"
	"github.com/campuslogs/crimelog/internal/log"
)

// commonFlags are the flags shared by every command that opens the store.
type commonFlags struct {
	envFile     string
	dbURL       string
	mappingFile string
}

// newClient builds a crimelog client from config plus flag overrides.
func newClient(flags commonFlags) (*crimelog.Client, config.AppConfig, error) {
	cfg, err := loadConfig(flags.envFile)
	if err != nil {
		return nil, config.AppConfig{}, err
	}
	if flags.dbURL != "" {
		cfg = cfg.WithDBURL(flags.dbURL)
	}
	if flags.mappingFile != "" {
		cfg = cfg.WithMappingFile(flags.mappingFile)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, config.AppConfig{}, fmt.Errorf("create data directory: %w", err)
	}

	logger := log.NewLogger(cfg)
	logger.SetDefault()

	client, err := crimelog.New(
		crimelog.WithConfig(cfg),
		crimelog.WithLogger(logger),
	)
	if err != nil {
		return nil, config.AppConfig{}, err
	}
	return client, cfg, nil
}
