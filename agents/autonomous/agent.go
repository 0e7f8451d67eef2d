/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package autonomous assembles the whole agent: MCP server descriptors
// from the environment, live sessions to each server, their tools, and the
// Claude executor that drives them. The model decides which tools to call;
// this package only wires them up.
package autonomous

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"

	"github.com/opsmend/opsmend/agents/executor"
	"github.com/opsmend/opsmend/agents/mcptool"
	"github.com/opsmend/opsmend/agents/subagent"
	"github.com/opsmend/opsmend/mcpclient"
	"github.com/opsmend/opsmend/mcpservers"
)

// Agent is a ready-to-query autonomous agent. It owns the MCP server
// subprocesses it dialed and must be closed.
type Agent struct {
	exec      executor.Interface
	client    anthropic.Client
	model     string
	maxTokens int64
	sessions  []*mcpclient.Session
	mcpTools  map[string]mcptool.Metadata
	tools     map[string]mcptool.Metadata // mcpTools plus delegate tools
}

// Option configures agent assembly.
type Option func(*settings)

type settings struct {
	model        string
	maxTokens    int64
	instructions string
	subagents    []subagent.Definition
}

// WithModel overrides the model for the agent and its subagents.
func WithModel(model string) Option {
	return func(s *settings) { s.model = model }
}

// WithMaxTokens overrides the per-response token limit.
func WithMaxTokens(tokens int64) Option {
	return func(s *settings) { s.maxTokens = tokens }
}

// WithSystemInstructions sets the parent agent's system prompt.
func WithSystemInstructions(instructions string) Option {
	return func(s *settings) { s.instructions = instructions }
}

// WithSubagents registers subagents the parent can delegate to.
func WithSubagents(defs []subagent.Definition) Option {
	return func(s *settings) { s.subagents = defs }
}

// New assembles an agent from the environment: it requires
// ANTHROPIC_API_KEY, gathers every configured MCP server via
// mcpservers.All, and dials each one. Servers that fail to dial are
// skipped with a warning; assembly fails only when no server is usable.
func New(ctx context.Context, opts ...Option) (*Agent, error) {
	log := clog.FromContext(ctx)

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return nil, errors.New("ANTHROPIC_API_KEY environment variable not set; get a key from https://console.anthropic.com/")
	}

	s := &settings{
		model:     executor.DefaultModel,
		maxTokens: 4096,
	}
	for _, opt := range opts {
		opt(s)
	}

	servers := mcpservers.All(ctx)
	if len(servers) == 0 {
		return nil, errors.New("no MCP servers configured; set the Datadog or GitHub credentials")
	}

	a := &Agent{
		// The SDK reads ANTHROPIC_API_KEY itself.
		client:    anthropic.NewClient(),
		model:     s.model,
		maxTokens: s.maxTokens,
		mcpTools:  map[string]mcptool.Metadata{},
	}

	for name, cfg := range servers {
		session, err := mcpclient.Dial(ctx, name, cfg)
		if err != nil {
			log.Warnf("Skipping MCP server %s: %v", name, err)
			continue
		}
		tools, err := session.Tools(ctx)
		if err != nil {
			log.Warnf("Skipping MCP server %s: %v", name, err)
			session.Close()
			continue
		}
		a.sessions = append(a.sessions, session)
		for toolName, meta := range mcptool.FromServer(name, session, tools) {
			a.mcpTools[toolName] = meta
		}
	}
	if len(a.sessions) == 0 {
		return nil, errors.New("no MCP server could be dialed")
	}

	execOpts := []executor.Option{
		executor.WithModel(s.model),
		executor.WithMaxTokens(s.maxTokens),
	}
	if s.instructions != "" {
		execOpts = append(execOpts, executor.WithSystemInstructions(s.instructions))
	}
	exec, err := executor.New(a.client, execOpts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating executor: %w", err)
	}
	a.exec = exec

	a.tools = a.mcpTools
	if len(s.subagents) > 0 {
		delegates, err := subagent.DelegateTools(s.subagents, a.runSubagent)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("registering subagents: %w", err)
		}
		merged := make(map[string]mcptool.Metadata, len(a.mcpTools)+len(delegates))
		maps.Copy(merged, a.mcpTools)
		maps.Copy(merged, delegates)
		a.tools = merged
	}

	log.With("servers", len(a.sessions)).
		With("tools", len(a.tools)).
		With("model", s.model).
		Info("Autonomous agent assembled")
	return a, nil
}

// Query sends a prompt through the agentic loop and returns the model's
// final answer. Attach an agenttrace.Trace to the context to observe tool
// calls and token usage.
func (a *Agent) Query(ctx context.Context, prompt string) (string, error) {
	if a.exec == nil {
		return "", errors.New("agent not assembled; use New")
	}
	return a.exec.Execute(ctx, prompt, a.tools)
}

// runSubagent executes a delegated task in a nested conversation with the
// subagent's instructions. Subagents get the MCP tools but cannot delegate
// further.
func (a *Agent) runSubagent(ctx context.Context, def subagent.Definition, task string) (string, error) {
	model := a.model
	if def.Model != "" {
		model = def.Model
	}
	exec, err := executor.New(a.client,
		executor.WithModel(model),
		executor.WithMaxTokens(a.maxTokens),
		executor.WithSystemInstructions(def.Instructions),
	)
	if err != nil {
		return "", fmt.Errorf("creating %s executor: %w", def.Name, err)
	}

	clog.FromContext(ctx).With("subagent", def.Name).Info("Delegating task to subagent")
	return exec.Execute(ctx, task, a.mcpTools)
}

// Close terminates every MCP server subprocess.
func (a *Agent) Close() error {
	var errs []error
	for _, s := range a.sessions {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s session: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SimpleQuery assembles an agent, runs one query, and tears it down. It is
// the one-off entry point the example drivers use.
func SimpleQuery(ctx context.Context, prompt string, opts ...Option) (string, error) {
	agent, err := New(ctx, opts...)
	if err != nil {
		return "", err
	}
	defer agent.Close()
	return agent.Query(ctx, prompt)
}
