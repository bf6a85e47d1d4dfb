// Package config loads server configuration from environment variables
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration
type Config struct {
	HTTPPort  int    `env:"PORT" envDefault:"3000"`
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
