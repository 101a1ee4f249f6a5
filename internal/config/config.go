package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the chatbot service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"chatbot-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Debug           bool          `env:"DEBUG" envDefault:"false"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`

	// DatabaseDSN accepts either a postgres:// URL or a SQLite file path.
	DatabaseDSN    string        `env:"DATABASE_DSN" envDefault:"chatbot.db"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	CompletionURL string        `env:"LM_STUDIO_URL" envDefault:"http://localhost:1234/v1/chat/completions"`
	ModelName     string        `env:"MODEL_NAME" envDefault:"local-model"`
	SystemPrompt  string        `env:"SYSTEM_PROMPT" envDefault:"You are a helpful AI assistant."`
	LLMTimeout    time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.CompletionURL) == "" {
		return nil, fmt.Errorf("LM_STUDIO_URL must not be empty")
	}
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		return nil, fmt.Errorf("DATABASE_DSN must not be empty")
	}

	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 60 * time.Second
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
