package llm

import (
	"fmt"
	"os"
	"time"
)

// Supported provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one generation including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig also serves any OpenAI-compatible endpoint through BaseURL.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // defaults to https://openrouter.ai/api/v1
}

// RetryConfig controls backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig picks small, cheap models; a challenge plan is a few hundred
// tokens.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv overlays GOALIFY_* environment variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	for name, dst := range map[string]*string{
		"GOALIFY_LLM_PROVIDER":        &cfg.Provider,
		"GOALIFY_ANTHROPIC_API_KEY":   &cfg.Anthropic.APIKey,
		"GOALIFY_ANTHROPIC_MODEL":     &cfg.Anthropic.Model,
		"GOALIFY_OPENAI_API_KEY":      &cfg.OpenAI.APIKey,
		"GOALIFY_OPENAI_MODEL":        &cfg.OpenAI.Model,
		"GOALIFY_OPENAI_BASE_URL":     &cfg.OpenAI.BaseURL,
		"GOALIFY_GEMINI_API_KEY":      &cfg.Gemini.APIKey,
		"GOALIFY_GEMINI_MODEL":        &cfg.Gemini.Model,
		"GOALIFY_OPENROUTER_API_KEY":  &cfg.OpenRouter.APIKey,
		"GOALIFY_OPENROUTER_MODEL":    &cfg.OpenRouter.Model,
		"GOALIFY_OPENROUTER_BASE_URL": &cfg.OpenRouter.BaseURL,
	} {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("GOALIFY_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// DiscoverConfig looks for the vendors' own API key variables, in the order
// Gemini, OpenAI, Anthropic, OpenRouter, and configures the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			*c.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider has an API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "GOALIFY_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "GOALIFY_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "GOALIFY_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "GOALIFY_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}

// ModelFor returns the configured model of the selected provider.
func (c Config) ModelFor() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	}
	return c.Provider
}
