package challengegen

import (
	"log/slog"
	"os"
	"time"
)

// DefaultTimeout bounds one generation when GOALIFY_GEN_TIMEOUT is unset.
const DefaultTimeout = 30 * time.Second

// Config controls the LLMGenerator.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds a single Generate call, retries included. When it
	// expires the fallback plan is returned.
	Timeout time.Duration
}

// DefaultConfig returns the recommended settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     TimeoutFromEnv(),
	}
}

// TimeoutFromEnv reads GOALIFY_GEN_TIMEOUT as a Go duration ("45s").
func TimeoutFromEnv() time.Duration {
	v := os.Getenv("GOALIFY_GEN_TIMEOUT")
	if v == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid GOALIFY_GEN_TIMEOUT", "value", v)
		return DefaultTimeout
	}
	return d
}
