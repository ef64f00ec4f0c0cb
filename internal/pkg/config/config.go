package config

import (
	"time"

	"truemeter-client/internal/infrastructure/scoring"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	API     APIConfig     `mapstructure:"api"`
	Display DisplayConfig `mapstructure:"display"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// APIConfig holds the scoring service endpoint.
// WriteTimeout on the server does not bound the outbound call; there is no
// client-side timeout.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,http_url"`
	Tracing bool   `mapstructure:"tracing"`
}

// DisplayConfig holds presentation settings
type DisplayConfig struct {
	Currency string `mapstructure:"currency" validate:"required,len=3,uppercase"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // submissions have no deadline
			ShutdownTimeout: 30 * time.Second,
		},
		API: APIConfig{
			BaseURL: scoring.DefaultBaseURL,
			Tracing: false,
		},
		Display: DisplayConfig{
			Currency: "EUR",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
