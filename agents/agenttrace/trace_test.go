/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package agenttrace

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTraceRecordsToolCalls(t *testing.T) {
	tr := New("what monitors are alerting?")

	tr.RecordToolCall("call_1", "mcp__datadog__get_monitors", map[string]any{"state": "alert"}, `{"count": 2}`)
	tr.BadToolCall("call_2", "mcp__github__bogus", nil, errors.New("unknown tool"))

	want := []ToolCall{{
		ID:     "call_1",
		Name:   "mcp__datadog__get_monitors",
		Args:   map[string]any{"state": "alert"},
		Result: `{"count": 2}`,
	}, {
		ID:   "call_2",
		Name: "mcp__github__bogus",
		Err:  "unknown tool",
	}}
	if diff := cmp.Diff(want, tr.ToolCalls()); diff != "" {
		t.Errorf("ToolCalls() mismatch (-want +got):\n%s", diff)
	}
	if got := tr.Prompt(); got != "what monitors are alerting?" {
		t.Errorf("Prompt() = %q", got)
	}
}

func TestTraceAccumulatesUsage(t *testing.T) {
	tr := New("p")
	tr.RecordTokenUsage("claude-sonnet-4-20250514", 100, 20)
	tr.RecordTokenUsage("claude-sonnet-4-20250514", 50, 10)

	want := TokenUsage{Model: "claude-sonnet-4-20250514", PromptTokens: 150, CompletionTokens: 30}
	if diff := cmp.Diff(want, tr.Usage()); diff != "" {
		t.Errorf("Usage() mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceConcurrentRecording(t *testing.T) {
	tr := New("p")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.RecordToolCall("id", "tool", nil, "ok")
			tr.RecordReasoning("because")
			tr.RecordTokenUsage("m", 1, 1)
		}()
	}
	wg.Wait()

	if got := len(tr.ToolCalls()); got != 50 {
		t.Errorf("got %d tool calls, want 50", got)
	}
	if got := len(tr.Reasoning()); got != 50 {
		t.Errorf("got %d reasoning blocks, want 50", got)
	}
	if got := tr.Usage().PromptTokens; got != 50 {
		t.Errorf("got %d prompt tokens, want 50", got)
	}
}

func TestContextRoundTrip(t *testing.T) {
	tr := New("p")
	ctx := WithTrace(context.Background(), tr)
	if got := FromContext(ctx); got != tr {
		t.Error("FromContext() did not return the attached trace")
	}

	// Missing trace yields a usable throwaway, not nil.
	orphan := FromContext(context.Background())
	if orphan == nil {
		t.Fatal("FromContext() returned nil for bare context")
	}
	orphan.RecordReasoning("dropped")
}
