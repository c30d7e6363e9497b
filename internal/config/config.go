package config

import "fmt"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Address                string `mapstructure:"address"                  validate:"required"`
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	Workers                int    `mapstructure:"workers"                  validate:"required,gt=0"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// ListenAddr returns the host:port pair the HTTP server binds to.
func (s ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.Address, s.Port)
}

// AuthConfig contains API key authentication settings.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key" validate:"required"`
	// ConstantTime switches the key check to a timing-safe comparison.
	ConstantTime bool `mapstructure:"constant_time"`
}
