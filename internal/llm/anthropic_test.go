package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicServer(t *testing.T, status int, header http.Header, body any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range header {
			w.Header()[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("sk-ant-test"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: anthropicModels["claude-haiku"]}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       anthropicModels["claude-haiku"],
		"content":     []map[string]any{{"type": "text", "text": text}},
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(kind, message string) map[string]any {
	return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": message}}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, nil,
		anthropicMessage("Here you go:\n```json\n{\"title\":\"Walk daily\",\"days\":7}\n```", "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a habit coach.",
		Messages:  []Message{{Role: RoleUser, Content: "Plan a challenge."}},
		Schema:    planSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Walk daily","days":7}`, string(resp.Content))
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("rate limit carries retry-after", func(t *testing.T) {
		p := anthropicServer(t, http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}},
			anthropicError("rate_limit_error", "slow down"))

		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}, MaxTokens: 64})
		var rl *ErrRateLimit
		require.ErrorAs(t, err, &rl)
		assert.Equal(t, 7*time.Second, rl.RetryAfter)
	})

	t.Run("overloaded", func(t *testing.T) {
		p := anthropicServer(t, http.StatusInternalServerError, nil, anthropicError("api_error", "boom"))

		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}, MaxTokens: 64})
		var unavailable *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("truncated plan", func(t *testing.T) {
		p := anthropicServer(t, http.StatusOK, nil, anthropicMessage(`{"title":"Wa`, "max_tokens"))

		_, err := p.Generate(context.Background(), Request{
			Messages:  []Message{{Role: RoleUser, Content: "Plan a challenge."}},
			Schema:    planSchema(),
			MaxTokens: 8,
		})
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-custom", resolveModel("claude-opus-custom", anthropicModels), "unknown names pass through")
}

func TestNewAnthropicProvider(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "sk-ant", Model: "claude-sonnet"})
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())
}
