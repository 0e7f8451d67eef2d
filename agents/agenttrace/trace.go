/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package agenttrace records what happened during one agent conversation:
// every tool call and its outcome, the model's reasoning blocks, and token
// usage. Drivers use the trace for verbose output and tests use it to
// assert on agent behavior.
package agenttrace

import (
	"context"
	"sync"
)

// ToolCall is one tool invocation observed during the conversation.
type ToolCall struct {
	ID     string
	Name   string
	Args   map[string]any
	Result string
	Err    string // non-empty for failed or malformed calls
}

// TokenUsage accumulates per-model token counts across turns.
type TokenUsage struct {
	Model            string
	PromptTokens     int64
	CompletionTokens int64
}

// Trace collects the record of a single conversation. Safe for use from
// concurrent tool handlers.
type Trace struct {
	mu        sync.Mutex
	prompt    string
	toolCalls []ToolCall
	reasoning []string
	usage     TokenUsage
}

// New starts a trace for the given user prompt.
func New(prompt string) *Trace {
	return &Trace{prompt: prompt}
}

// Prompt returns the user prompt the conversation started from.
func (t *Trace) Prompt() string {
	return t.prompt
}

// RecordToolCall records a completed tool invocation.
func (t *Trace) RecordToolCall(id, name string, args map[string]any, result string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toolCalls = append(t.toolCalls, ToolCall{ID: id, Name: name, Args: args, Result: result})
}

// BadToolCall records a tool invocation that failed or could not be
// dispatched (unknown tool, malformed arguments, server error).
func (t *Trace) BadToolCall(id, name string, args map[string]any, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toolCalls = append(t.toolCalls, ToolCall{ID: id, Name: name, Args: args, Err: err.Error()})
}

// RecordReasoning appends a thinking block emitted by the model.
func (t *Trace) RecordReasoning(thinking string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reasoning = append(t.reasoning, thinking)
}

// RecordTokenUsage accumulates token counts for one model turn.
func (t *Trace) RecordTokenUsage(model string, promptTokens, completionTokens int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.usage.Model = model
	t.usage.PromptTokens += promptTokens
	t.usage.CompletionTokens += completionTokens
}

// ToolCalls returns a copy of the recorded tool calls.
func (t *Trace) ToolCalls() []ToolCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ToolCall, len(t.toolCalls))
	copy(out, t.toolCalls)
	return out
}

// Reasoning returns a copy of the recorded thinking blocks.
func (t *Trace) Reasoning() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.reasoning))
	copy(out, t.reasoning)
	return out
}

// Usage returns the accumulated token usage.
func (t *Trace) Usage() TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}

type traceKey struct{}

// WithTrace attaches a trace to the context.
func WithTrace(ctx context.Context, t *Trace) context.Context {
	return context.WithValue(ctx, traceKey{}, t)
}

// FromContext returns the trace attached to the context, or an unattached
// throwaway trace so callers never have to nil-check.
func FromContext(ctx context.Context) *Trace {
	if t, ok := ctx.Value(traceKey{}).(*Trace); ok {
		return t
	}
	return New("")
}
