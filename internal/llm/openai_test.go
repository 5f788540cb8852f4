package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openAIServer serves one canned chat completion or error for every request
// and hands the decoded request body to inspect, when set.
func openAIServer(t *testing.T, status int, body any, inspect func(map[string]any)) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			raw, _ := io.ReadAll(r.Body)
			var req map[string]any
			_ = json.Unmarshal(raw, &req)
			inspect(req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini", strictSchema: true}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_Generate(t *testing.T) {
	var sent map[string]any
	p := openAIServer(t, http.StatusOK, chatCompletion(`{"title":"Walk daily","days":7}`, "stop"),
		func(req map[string]any) { sent = req })

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a habit coach.",
		Messages:  []Message{{Role: RoleUser, Content: "Plan a challenge."}},
		Schema:    planSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Walk daily","days":7}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	require.NotNil(t, sent)
	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 2, "system prompt goes first")
	format, _ := sent["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		schema *Schema
		target any
	}{
		{
			name:   "rate limit",
			status: http.StatusTooManyRequests,
			body:   map[string]any{"error": map[string]any{"type": "tokens", "message": "slow down", "code": "rate_limit_exceeded"}},
			target: new(*ErrRateLimit),
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   map[string]any{"error": map[string]any{"type": "server_error", "message": "boom"}},
			target: new(*ErrProviderUnavailable),
		},
		{
			name:   "schema mismatch",
			status: http.StatusOK,
			body:   chatCompletion(`{"title":"Walk"}`, "stop"),
			schema: planSchema(),
			target: new(*ErrInvalidResponse),
		},
		{
			name:   "cut off",
			status: http.StatusOK,
			body:   chatCompletion(`{"title":"Wa`, "length"),
			schema: planSchema(),
			target: new(*ErrMaxTokensExceeded),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := openAIServer(t, tt.status, tt.body, nil)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "Plan a challenge."}},
				Schema:   tt.schema,
			})
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err, "API key is required")

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o", BaseURL: "https://llm.example.test/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
	assert.True(t, p.strictSchema)
}
