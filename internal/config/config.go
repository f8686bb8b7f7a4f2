// SPDX-License-Identifier: MIT

// Package config reads process configuration from the environment,
// optionally seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/tourcanvas/api"
)

// Environment variable names.
const (
	EnvAPIURL    = "TOURCANVAS_API_URL"
	EnvToken     = "TOURCANVAS_TOKEN"
	EnvEnv       = "TOURCANVAS_ENV"
	EnvTimeout   = "TOURCANVAS_TIMEOUT_SECONDS"
	EnvAlgorithm = "TOURCANVAS_ALGORITHM"
)

// Config holds all process configuration.
type Config struct {
	APIURL    string
	Token     string
	Env       string
	Timeout   time.Duration
	Algorithm api.Algorithm
}

// Load reads configuration from the environment after loading files
// (default ".env"). Missing files are ignored; set variables win over
// file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: %s: %w", f, err)
		}
	}

	timeout, err := getEnvInt(EnvTimeout, 30)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		APIURL:    getEnv(EnvAPIURL, "http://127.0.0.1:5000"),
		Token:     getEnv(EnvToken, ""),
		Env:       getEnv(EnvEnv, "development"),
		Timeout:   time.Duration(timeout) * time.Second,
		Algorithm: api.Algorithm(getEnv(EnvAlgorithm, string(api.SimulatedAnnealing))),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", EnvAPIURL, c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvTimeout)
	}
	if err := c.Algorithm.Validate(); err != nil {
		return fmt.Errorf("%s: %w", EnvAlgorithm, err)
	}

	return nil
}

// IsProduction reports whether Env is "production".
func (c *Config) IsProduction() bool { return c.Env == "production" }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, value)
	}
	return n, nil
}
