// Package llm talks to hosted language models. Providers return JSON that
// has already been checked against the caller's schema; retry and logging
// are layered on as decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider asks for JSON in that shape and validates it before
	// returning.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model this provider sends requests to.
	ModelID() string
}

// Request is a single generation call.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, constrains the output to JSON.
	Schema *Schema

	MaxTokens int

	// Temperature ranges over 0.0 - 1.0. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name is kebab-case, e.g. "challenge-plan";
// it doubles as the schema name on OpenAI and the cache key for the
// compiled validator.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output.
type Response struct {
	// Content is validated JSON when the request carried a schema, raw text
	// otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request, which may differ
	// from ModelID when a provider routes aliases.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
