/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// simplequery runs a one-off natural-language query against the configured
// MCP servers and prints the agent's answer.
//
// Usage:
//
//	simplequery [prompt...]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/opsmend/opsmend/agents/agenttrace"
	"github.com/opsmend/opsmend/agents/autonomous"
	"github.com/opsmend/opsmend/agents/executor"
)

type config struct {
	Model     string `env:"CLAUDE_MODEL"`
	MaxTokens int64  `env:"MAX_TOKENS,default=4096"`
	Verbose   bool   `env:"VERBOSE,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}
	if cfg.Model == "" {
		cfg.Model = executor.DefaultModel
	}

	prompt := strings.Join(os.Args[1:], " ")
	if prompt == "" {
		prompt = "How many Datadog monitors do I have in total?"
	}

	trace := agenttrace.New(prompt)
	ctx = agenttrace.WithTrace(ctx, trace)

	answer, err := autonomous.SimpleQuery(ctx, prompt,
		autonomous.WithModel(cfg.Model),
		autonomous.WithMaxTokens(cfg.MaxTokens),
	)
	if err != nil {
		clog.FatalContextf(ctx, "query failed: %v", err)
	}

	if cfg.Verbose {
		for _, call := range trace.ToolCalls() {
			if call.Err != "" {
				fmt.Printf("tool %s failed: %s\n", call.Name, call.Err)
				continue
			}
			fmt.Printf("tool %s -> %d bytes\n", call.Name, len(call.Result))
		}
		usage := trace.Usage()
		fmt.Printf("tokens: %d in, %d out\n\n", usage.PromptTokens, usage.CompletionTokens)
	}

	fmt.Println(answer)
}
