/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package executor runs the agentic conversation loop against the
// Anthropic API: it sends the prompt with the available MCP tools, executes
// the tool calls the model makes, feeds results back, and repeats until the
// model answers with text. Transient API errors (rate limits, overload) are
// retried with backoff.
package executor
