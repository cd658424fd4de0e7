// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Port              int           `env:"PORT,default=5001"`
	DBPath            string        `env:"DB_PATH,default=./data/marketplace.db"`
	AccessTokenSecret string        `env:"ACCESS_TOKEN_SECRET,required"`
	TokenDuration     time.Duration `env:"TOKEN_DURATION,default=1h"`
}

// Load reads configuration from the environment, first applying a .env file
// if one is present. Missing required values fail fast at startup.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
