package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SHASHANK8412/Civil-Soul-sub000/internal/config"
)

func TestConfig_RateLimitPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		requests int
		window   int
		expected int
	}{
		{name: "default budget over default window", requests: 100, window: 60, expected: 1},
		{name: "high budget", requests: 600, window: 60, expected: 10},
		{name: "zero window does not panic", requests: 100, window: 0, expected: 100},
		{name: "negative window does not panic", requests: 100, window: -5, expected: 100},
		{name: "window larger than budget floors to one", requests: 10, window: 60, expected: 1},
		{name: "rate limiting disabled", requests: 0, window: 60, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				RateLimitRequests: tt.requests,
				RateLimitWindow:   tt.window,
			}
			assert.Equal(t, tt.expected, cfg.RateLimitPerSecond())
		})
	}
}
