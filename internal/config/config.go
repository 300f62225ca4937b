// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the corresponding environment variable is unset or invalid.
const (
	DefaultAPIURL         = "https://api.github.com/"
	DefaultConcurrency    = 4
	DefaultRateLimitSleep = time.Hour
)

// Config holds the settings needed to talk to the GitHub API.
type Config struct {
	APIURL string
	// Token is optional. Requests are unauthenticated when it is empty.
	Token string

	// Concurrency bounds the number of commit fetches in flight per search.
	Concurrency int
	// RateLimitSleep caps a single wait on GitHub's secondary rate limit.
	RateLimitSleep time.Duration
}

// Load reads the configuration from the environment after loading a .env file
// from the working directory, if one exists. Variables already set in the
// environment take precedence over the file. Invalid numeric or duration
// values fall back to the defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         os.Getenv("GITHUB_API_URL"),
		Token:          os.Getenv("GITHUB_TOKEN"),
		Concurrency:    DefaultConcurrency,
		RateLimitSleep: DefaultRateLimitSleep,
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	// go-github requires a trailing slash on the base URL.
	if !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}

	if v := os.Getenv("GITHUB_ACTIVITY_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			cfg.Concurrency = n
		}
	}
	if v := os.Getenv("GITHUB_RATE_LIMIT_SLEEP"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RateLimitSleep = d
		}
	}

	return cfg
}
