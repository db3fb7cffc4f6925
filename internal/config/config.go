// Package config handles application configuration from files, environment
// variables and CLI flags.
package config

import (
	"fmt"
)

// Config is the root configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Campaign   CampaignConfig   `mapstructure:"campaign"`
	Thresholds ThresholdsConfig `mapstructure:"thresholds"`
	Reports    ReportsConfig    `mapstructure:"reports"`
	Server     ServerConfig     `mapstructure:"server"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // auto, text, json
}

// CampaignConfig describes the default test campaign.
type CampaignConfig struct {
	TargetURL  string   `mapstructure:"target_url"`
	Candidates int      `mapstructure:"candidates"`
	Execute    int      `mapstructure:"execute"`
	Categories []string `mapstructure:"categories"`
}

// ThresholdsConfig holds the analysis limits.
type ThresholdsConfig struct {
	MaxExecutionTime float64 `mapstructure:"max_execution_time"`
	MinSuccessRate   float64 `mapstructure:"min_success_rate"`
	MaxErrorRate     float64 `mapstructure:"max_error_rate"`
	MinTestCount     int     `mapstructure:"min_test_count"`
}

// ReportsConfig configures report persistence.
type ReportsConfig struct {
	Store    string `mapstructure:"store"` // json or sqlite
	Dir      string `mapstructure:"dir"`
	Database string `mapstructure:"database"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr            string   `mapstructure:"addr"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	ShutdownTimeout string   `mapstructure:"shutdown_timeout"`
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}

	switch c.Reports.Store {
	case "json", "sqlite":
	default:
		return fmt.Errorf("reports.store: unknown store %q", c.Reports.Store)
	}

	if c.Campaign.Candidates <= 0 {
		return fmt.Errorf("campaign.candidates: must be positive, got %d", c.Campaign.Candidates)
	}
	if c.Campaign.Execute <= 0 {
		return fmt.Errorf("campaign.execute: must be positive, got %d", c.Campaign.Execute)
	}

	if c.Thresholds.MaxExecutionTime <= 0 {
		return fmt.Errorf("thresholds.max_execution_time: must be positive, got %v", c.Thresholds.MaxExecutionTime)
	}
	if c.Thresholds.MinSuccessRate < 0 || c.Thresholds.MinSuccessRate > 1 {
		return fmt.Errorf("thresholds.min_success_rate: must be in [0,1], got %v", c.Thresholds.MinSuccessRate)
	}
	if c.Thresholds.MaxErrorRate < 0 || c.Thresholds.MaxErrorRate > 1 {
		return fmt.Errorf("thresholds.max_error_rate: must be in [0,1], got %v", c.Thresholds.MaxErrorRate)
	}
	return nil
}
