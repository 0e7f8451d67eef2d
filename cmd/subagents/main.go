/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// subagents demonstrates delegation: the parent agent hands monitoring
// analysis to a specialist subagent and report writing to another, then
// synthesizes their answers.
//
// Definitions come from SUBAGENTS_FILE (YAML) when set, otherwise the
// built-in incident-management trio is used.
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
	"github.com/opsmend/opsmend/agents/subagent"
)

type config struct {
	Model         string `env:"CLAUDE_MODEL"`
	MaxTokens     int64  `env:"MAX_TOKENS,default=4096"`
	SubagentsFile string `env:"SUBAGENTS_FILE"`
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

	defs := subagent.Defaults()
	if cfg.SubagentsFile != "" {
		var err error
		if defs, err = subagent.LoadFile(cfg.SubagentsFile); err != nil {
			clog.FatalContextf(ctx, "loading subagents: %v", err)
		}
	}
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	clog.InfoContextf(ctx, "Subagents registered: %s", strings.Join(names, ", "))

	agent, err := autonomous.New(ctx,
		autonomous.WithModel(cfg.Model),
		autonomous.WithMaxTokens(cfg.MaxTokens),
		autonomous.WithSubagents(defs),
	)
	if err != nil {
		clog.FatalContextf(ctx, "assembling agent: %v", err)
	}
	defer agent.Close()

	prompt := strings.Join(os.Args[1:], " ")
	if prompt == "" {
		prompt = "Delegate to the monitoring agent to analyze the current state of my Datadog monitors, " +
			"then delegate to the reporting agent to turn that analysis into an executive summary."
	}

	trace := agenttrace.New(prompt)
	ctx = agenttrace.WithTrace(ctx, trace)

	answer, err := agent.Query(ctx, prompt)
	if err != nil {
		clog.FatalContextf(ctx, "query failed: %v", err)
	}

	for _, call := range trace.ToolCalls() {
		if strings.HasPrefix(call.Name, "delegate_") {
			fmt.Printf("[%s]\n%s\n\n", strings.TrimPrefix(call.Name, "delegate_"), call.Result)
		}
	}
	fmt.Println(answer)
}
