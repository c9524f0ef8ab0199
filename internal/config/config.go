// Package config provides configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Enrichment settings
	GeoDBPath string `mapstructure:"geodbpath"`
	Enrich    bool   `mapstructure:"enrich"`

	// Output settings
	OutputFormat string `mapstructure:"outputformat"`
	Workers      int    `mapstructure:"workers"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration read from the environment.
func GetConfig() *Config {
	once.Do(func() {
		loaded, err := Load("")
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	})
	return cfg
}

// Load reads defaults, the optional YAML file at path and LINKSTATS_*
// environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("appname", "linkstats")
	v.SetDefault("environment", Development)
	v.SetDefault("loglevel", string(LogLevelInfo))
	v.SetDefault("logsdir", "")
	v.SetDefault("logsmaxsizeinmb", 20)
	v.SetDefault("logsmaxbackups", 10)
	v.SetDefault("logsmaxageindays", 30)
	v.SetDefault("geodbpath", "")
	v.SetDefault("enrich", false)
	v.SetDefault("outputformat", FormatJSON)
	v.SetDefault("workers", 4)

	v.BindEnv("appname", "LINKSTATS_APP_NAME")
	v.BindEnv("environment", "LINKSTATS_ENV")
	v.BindEnv("loglevel", "LINKSTATS_LOG_LEVEL")
	v.BindEnv("logsdir", "LINKSTATS_LOGS_DIR")
	v.BindEnv("logsmaxsizeinmb", "LINKSTATS_LOGS_MAX_SIZE_IN_MB")
	v.BindEnv("logsmaxbackups", "LINKSTATS_LOGS_MAX_BACKUPS")
	v.BindEnv("logsmaxageindays", "LINKSTATS_LOGS_MAX_AGE_IN_DAYS")
	v.BindEnv("geodbpath", "LINKSTATS_GEO_DB_PATH")
	v.BindEnv("enrich", "LINKSTATS_ENRICH")
	v.BindEnv("outputformat", "LINKSTATS_OUTPUT_FORMAT")
	v.BindEnv("workers", "LINKSTATS_WORKERS")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	if err := loaded.validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("%w: environment %q", ErrInvalidConfig, c.Environment)
	}

	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	if c.OutputFormat != FormatJSON && c.OutputFormat != FormatYAML {
		return fmt.Errorf("%w: output format %q", ErrInvalidConfig, c.OutputFormat)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
