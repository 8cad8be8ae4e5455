// Package config loads the service configuration from defaults, an optional
// YAML file and CHARSHEET_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Supported relay providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// EnvPrefix is prepended to every environment variable override, e.g.
// CHARSHEET_RELAY_API_KEY for relay.api_key.
const EnvPrefix = "CHARSHEET"

// Config holds the application configuration.
type Config struct {
	Logger    LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig holds database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	Addr         string        `mapstructure:"addr"          validate:"required,hostname_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  validate:"min=1s"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"min=1s"`
}

// RelayConfig holds chat relay settings. An empty APIKey disables the relay.
type RelayConfig struct {
	Provider      string `mapstructure:"provider"       validate:"required,oneof=openai gemini"`
	APIKey        string `mapstructure:"api_key"`
	BaseURL       string `mapstructure:"base_url"       validate:"omitempty,url"`
	DefaultModel  string `mapstructure:"default_model"  validate:"required"`
	RecordHistory bool   `mapstructure:"record_history"`
}

// TaskConfig holds settings for a single scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// SchedulerConfig holds scheduler settings. Tasks maps a task name to its
// configuration.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

var defaults = map[string]any{
	"log.level": "info",
	"log.json":  false,

	"database.path": "charsheet.db",

	"http.addr":          ":8000",
	"http.read_timeout":  15 * time.Second,
	"http.write_timeout": 2 * time.Minute,

	"relay.provider":       ProviderOpenAI,
	"relay.api_key":        "",
	"relay.base_url":       "",
	"relay.default_model":  "gpt-3.5-turbo",
	"relay.record_history": false,

	"scheduler.tasks.sql_maintenance.enabled":  false,
	"scheduler.tasks.sql_maintenance.schedule": "0 0 3 * * *",
}

// LoadConfig reads configuration from path on top of the defaults and applies
// environment overrides. A missing file at path is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
