// Package config loads and validates configuration at startup.
// Fail-fast: if a required variable is missing, Load returns an error and
// the process exits.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the jobboard service.
type Config struct {
	HTTPPort    string `mapstructure:"http_port"`
	GRPCPort    string `mapstructure:"grpc_port"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogOutput string `mapstructure:"log_output"`

	DigestEnabled bool   `mapstructure:"digest_enabled"`
	DigestCron    string `mapstructure:"digest_cron"` // standard 5-field spec, UTC
}

var keys = []string{
	"http_port", "grpc_port", "database_url", "redis_url",
	"log_level", "log_format", "log_output",
	"digest_enabled", "digest_cron",
}

// Load reads an optional .env file, then environment variables, and returns
// a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("http_port", "8083")
	v.SetDefault("grpc_port", "9093")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("log_output", "stdout")
	v.SetDefault("digest_enabled", true)
	v.SetDefault("digest_cron", "0 6 * * *")

	// Keys map 1:1 to upper-cased env names (DATABASE_URL, HTTP_PORT, ...).
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.DigestEnabled && c.DigestCron == "" {
		return fmt.Errorf("DIGEST_CRON must be set when DIGEST_ENABLED is true")
	}
	return nil
}
