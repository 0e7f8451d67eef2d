/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// incidentfix runs the end-to-end incident workflow: detect the most
// critical alerting Datadog monitor, investigate the affected repository
// on GitHub, diagnose the root cause, and open a pull request with a fix.
//
// Usage:
//
//	incidentfix            # agent picks the repository from the alert
//	REPOSITORY=o/r incidentfix
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"github.com/opsmend/opsmend/agents/agenttrace"
	"github.com/opsmend/opsmend/agents/autonomous"
	"github.com/opsmend/opsmend/agents/executor"
	"github.com/opsmend/opsmend/incident"
)

type config struct {
	Model     string `env:"CLAUDE_MODEL"`
	MaxTokens int64  `env:"MAX_TOKENS,default=8192"`

	// Repository optionally pins the investigation ("owner/name").
	Repository string `env:"REPOSITORY"`
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

	prompt, err := incident.Prompt(incident.Options{Repository: cfg.Repository})
	if err != nil {
		clog.FatalContextf(ctx, "building workflow prompt: %v", err)
	}

	agent, err := autonomous.New(ctx,
		autonomous.WithModel(cfg.Model),
		autonomous.WithMaxTokens(cfg.MaxTokens),
		autonomous.WithSystemInstructions(incident.SystemInstructions),
	)
	if err != nil {
		clog.FatalContextf(ctx, "assembling agent: %v", err)
	}
	defer agent.Close()

	trace := agenttrace.New(prompt)
	ctx = agenttrace.WithTrace(ctx, trace)

	clog.InfoContextf(ctx, "Starting incident workflow (model=%s)", cfg.Model)
	answer, err := agent.Query(ctx, prompt)
	if err != nil {
		clog.FatalContextf(ctx, "workflow failed: %v", err)
	}

	report, err := incident.ParseReport(answer)
	if err != nil {
		// The agent sometimes has nothing to fix; surface its prose.
		clog.WarnContextf(ctx, "no structured report: %v", err)
		fmt.Println(answer)
		return
	}

	fmt.Printf("Monitor:     %s\n", report.Monitor)
	fmt.Printf("Service:     %s\n", report.Service)
	fmt.Printf("Root cause:  %s\n", report.RootCause)
	fmt.Printf("Fix:         %s\n", report.Fix)
	if report.PullRequestURL != "" {
		fmt.Printf("Pull request: %s\n", report.PullRequestURL)
	}
	clog.InfoContextf(ctx, "Workflow complete: %d tool calls", len(trace.ToolCalls()))
}
