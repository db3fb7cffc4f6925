package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:         viper.New(),
		envPrefix: "WEBPROBE",
	}
}

// NewLoaderWithViper creates a loader using an existing viper instance.
// This allows integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: "WEBPROBE",
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (WEBPROBE_*)
// 3. Project config (.webprobe.yaml in current directory)
// 4. User config (~/.config/webprobe/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName(".webprobe")
		l.v.SetConfigType("yaml")

		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", "webprobe"))
		}
	}

	// Config file is optional.
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")

	l.v.SetDefault("campaign.target_url", "")
	l.v.SetDefault("campaign.candidates", 10)
	l.v.SetDefault("campaign.execute", 5)
	l.v.SetDefault("campaign.categories", []string{"functional", "edge_case", "performance", "ui_validation"})

	l.v.SetDefault("thresholds.max_execution_time", 30.0)
	l.v.SetDefault("thresholds.min_success_rate", 0.8)
	l.v.SetDefault("thresholds.max_error_rate", 0.2)
	l.v.SetDefault("thresholds.min_test_count", 10)

	l.v.SetDefault("reports.store", "json")
	l.v.SetDefault("reports.dir", "test_reports")
	l.v.SetDefault("reports.database", filepath.Join(".webprobe", "webprobe.db"))

	l.v.SetDefault("server.addr", ":8077")
	l.v.SetDefault("server.cors_origins", []string{"*"})
	l.v.SetDefault("server.shutdown_timeout", "10s")
}
