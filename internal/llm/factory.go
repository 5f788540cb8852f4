package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/goalify/internal/store"
)

// ErrNoProvider is returned by NewProviderFromEnv when no provider is
// configured and no API key can be discovered.
var ErrNoProvider = errors.New("no LLM provider configured")

// NewProvider builds the provider selected by cfg and wraps it so that each
// call is retried on transient failure and every attempt is logged. repo may
// be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller -> retry -> logging -> base
	return WithRetry(WithLogging(base, cfg.Provider, repo), cfg.Retry), nil
}

// NewProviderFromEnv uses GOALIFY_LLM_PROVIDER when it is set and otherwise
// falls back to DiscoverConfig. The returned Config carries the timeout the
// caller should apply per generation.
func NewProviderFromEnv(ctx context.Context, repo store.EventRepo) (Provider, Config, error) {
	var cfg Config
	if os.Getenv("GOALIFY_LLM_PROVIDER") != "" {
		cfg = ConfigFromEnv()
	} else {
		found, ok := DiscoverConfig()
		if !ok {
			return nil, Config{}, ErrNoProvider
		}
		cfg = found
		// Explicit timeout still applies to a discovered provider.
		cfg.Timeout = ConfigFromEnv().Timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	p, err := NewProvider(ctx, cfg, repo)
	if err != nil {
		return nil, cfg, err
	}
	slog.Debug("llm provider ready", "provider", cfg.Provider, "model", p.ModelID())
	return p, cfg, nil
}
