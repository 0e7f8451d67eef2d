/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package mcptool bridges tools declared by MCP servers into the Anthropic
// tool-calling API. Each remote tool becomes a Metadata entry whose handler
// forwards the call back to the owning server session.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opsmend/opsmend/agents/agenttrace"
)

// Caller invokes a named tool on an MCP server. *mcpclient.Session
// satisfies this; tests substitute fakes.
type Caller interface {
	Call(ctx context.Context, tool string, args map[string]any) (string, error)
}

// Metadata pairs an Anthropic tool definition with its handler. The
// handler's return value is marshaled as the tool result for the model.
type Metadata struct {
	Definition anthropic.ToolParam
	Handler    func(ctx context.Context, toolUse anthropic.ToolUseBlock) map[string]any
}

// Name builds the qualified tool name a server's tool is exposed under.
// Namespacing by server keeps identically named tools from colliding.
func Name(server, tool string) string {
	return fmt.Sprintf("mcp__%s__%s", server, tool)
}

// FromServer converts a server's declared tools into executor metadata.
// Tool calls are forwarded to the caller and recorded on the context trace.
func FromServer(server string, caller Caller, tools []mcp.Tool) map[string]Metadata {
	out := make(map[string]Metadata, len(tools))
	for _, tool := range tools {
		out[Name(server, tool.Name)] = Metadata{
			Definition: definition(server, tool),
			Handler:    handler(server, tool.Name, caller),
		}
	}
	return out
}

// definition maps the MCP input schema onto the Anthropic tool param.
func definition(server string, tool mcp.Tool) anthropic.ToolParam {
	return anthropic.ToolParam{
		Name:        Name(server, tool.Name),
		Description: anthropic.String(tool.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: tool.InputSchema.Properties,
			Required:   tool.InputSchema.Required,
		},
	}
}

// handler forwards a Claude tool call to the MCP server.
func handler(server, tool string, caller Caller) func(ctx context.Context, toolUse anthropic.ToolUseBlock) map[string]any {
	return func(ctx context.Context, toolUse anthropic.ToolUseBlock) map[string]any {
		trace := agenttrace.FromContext(ctx)

		var args map[string]any
		if len(toolUse.Input) > 0 {
			if err := json.Unmarshal(toolUse.Input, &args); err != nil {
				trace.BadToolCall(toolUse.ID, toolUse.Name, nil, fmt.Errorf("parsing tool input: %w", err))
				return map[string]any{"error": fmt.Sprintf("failed to parse tool input: %v", err)}
			}
		}

		text, err := caller.Call(ctx, tool, args)
		if err != nil {
			trace.BadToolCall(toolUse.ID, toolUse.Name, args, err)
			return map[string]any{"error": fmt.Sprintf("%s tool %s failed: %v", server, tool, err)}
		}

		trace.RecordToolCall(toolUse.ID, toolUse.Name, args, text)
		return map[string]any{"output": text}
	}
}
