package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/goalify/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open("file:llm_logging_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoggingProvider_RecordsSuccessAndFailure(t *testing.T) {
	st := openTestStore(t)
	repo := st.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, "mock", repo)

	ctx := WithPurpose(context.Background(), PurposeChallengeGen)
	if _, err := p.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "hi"}}, Schema: planSchemaLoose()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	failed, ok := events[0], events[1]
	if failed.Success || failed.ErrorMessage != "boom" {
		t.Fatalf("expected failed event first, got %+v", failed)
	}
	if !ok.Success || ok.InputTokens != 12 || ok.Provider != "mock" || ok.Purpose != "challenge-gen" {
		t.Fatalf("unexpected success event: %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nsys") || !strings.Contains(ok.RequestBody, "[schema: test-loose]") {
		t.Fatalf("request body not serialized: %q", ok.RequestBody)
	}
	if ok.ResponseBody != `{"ok":true}` {
		t.Fatalf("unexpected response body %q", ok.ResponseBody)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func planSchemaLoose() *Schema {
	return &Schema{
		Name:       "test-loose",
		Definition: map[string]any{"type": "object"},
	}
}
