// Package config loads gateway configuration from an optional YAML file with
// SELLMATE_-prefixed environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the gateway process.
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Auth     AuthConfig
	Signup   SignupConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Address string
}

// SessionConfig holds session token settings. Secret is required; tokens are
// useless without a stable signing key.
type SessionConfig struct {
	Secret     string
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// AuthConfig points at the external auth backend that verifies credentials.
// The gateway never stores or hashes credentials itself.
type AuthConfig struct {
	BackendURL string `mapstructure:"backend_url"`
}

// SignupConfig tunes the terms-gate registry.
type SignupConfig struct {
	GateTTLMinutes int `mapstructure:"gate_ttl_minutes"`
}

// DatabaseConfig holds the optional funnel database. An empty URL disables
// funnel recording entirely.
type DatabaseConfig struct {
	URL string
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string
	Format string
	Output string
}

// Load reads configuration from path (or ./config.yaml when empty) and the
// environment. A missing file is fine; the environment alone can carry a
// full configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SELLMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("session.ttl_minutes", 720)
	v.SetDefault("signup.gate_ttl_minutes", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	// Unmarshal does not see env-only keys; pull the string fields through
	// Get so SELLMATE_* overrides work without a config file.
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = v.GetString("session.secret")
	}
	if cfg.Auth.BackendURL == "" {
		cfg.Auth.BackendURL = v.GetString("auth.backend_url")
	}
	if cfg.Database.URL == "" {
		cfg.Database.URL = v.GetString("database.url")
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("config: session.secret is required (SELLMATE_SESSION_SECRET)")
	}

	return &cfg, nil
}
