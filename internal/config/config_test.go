package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		expected Config
	}{
		{
			name: "defaults when nothing is set",
			env:  map[string]string{},
			expected: Config{
				APIURL:         DefaultAPIURL,
				Concurrency:    DefaultConcurrency,
				RateLimitSleep: DefaultRateLimitSleep,
			},
		},
		{
			name: "explicit values",
			env: map[string]string{
				"GITHUB_API_URL":              "https://ghe.example.com/api/v3",
				"GITHUB_TOKEN":                "secret",
				"GITHUB_ACTIVITY_CONCURRENCY": "8",
				"GITHUB_RATE_LIMIT_SLEEP":     "5m",
			},
			expected: Config{
				APIURL:         "https://ghe.example.com/api/v3/",
				Token:          "secret",
				Concurrency:    8,
				RateLimitSleep: 5 * time.Minute,
			},
		},
		{
			name: "invalid numbers fall back to defaults",
			env: map[string]string{
				"GITHUB_ACTIVITY_CONCURRENCY": "0",
				"GITHUB_RATE_LIMIT_SLEEP":     "soon",
			},
			expected: Config{
				APIURL:         DefaultAPIURL,
				Concurrency:    DefaultConcurrency,
				RateLimitSleep: DefaultRateLimitSleep,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{"GITHUB_API_URL", "GITHUB_TOKEN", "GITHUB_ACTIVITY_CONCURRENCY", "GITHUB_RATE_LIMIT_SLEEP"} {
				t.Setenv(key, tc.env[key])
			}

			cfg := Load()

			assert.Equal(t, tc.expected, *cfg)
		})
	}
}
