/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpclient

import (
	"context"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opsmend/opsmend/mcpservers"
)

// clientName identifies this process in the MCP initialize handshake.
const clientName = "opsmend"

// Session is a live connection to a single MCP server subprocess.
type Session struct {
	// Name is the server's key in the descriptor map ("datadog", "github").
	Name string

	client *client.Client
}

// Dial spawns the server described by cfg and runs the MCP initialize
// handshake. The returned Session must be closed to reap the subprocess.
func Dial(ctx context.Context, name string, cfg mcpservers.ServerConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("server %s: %w", name, err)
	}

	c, err := client.NewStdioMCPClient(cfg.Command, cfg.Environ(), cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("spawning %s server (%s): %w", name, cfg.Command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: "0.1.0",
	}
	initRes, err := c.Initialize(ctx, initReq)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initializing %s server: %w", name, err)
	}

	clog.FromContext(ctx).
		With("server", name).
		With("implementation", initRes.ServerInfo.Name).
		Info("Connected to MCP server")

	return &Session{Name: name, client: c}, nil
}

// Tools lists the tools the server declares.
func (s *Session) Tools(ctx context.Context) ([]mcp.Tool, error) {
	res, err := s.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing %s tools: %w", s.Name, err)
	}
	return res.Tools, nil
}

// Call invokes a tool on the server and returns the flattened text content
// of its result. A result the server flags as an error comes back as a Go
// error carrying the same text.
func (s *Session) Call(ctx context.Context, tool string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	res, err := s.client.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("calling %s on %s: %w", tool, s.Name, err)
	}

	text := FlattenContent(res.Content)
	if res.IsError {
		return "", fmt.Errorf("tool %s on %s failed: %s", tool, s.Name, text)
	}
	return text, nil
}

// Close terminates the server subprocess.
func (s *Session) Close() error {
	return s.client.Close()
}
