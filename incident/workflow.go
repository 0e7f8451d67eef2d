/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package incident assembles the end-to-end incident-fix workflow: detect
// an alerting Datadog monitor, investigate the affected code on GitHub,
// diagnose the root cause, and open a pull request with a fix. The agent
// does the work; this package builds the instructions and parses the
// structured report it answers with.
package incident

import (
	"fmt"

	"github.com/opsmend/opsmend/agents/promptbuilder"
	"github.com/opsmend/opsmend/agents/result"
	"github.com/opsmend/opsmend/agents/schema"
)

// SystemInstructions is the system prompt for the incident-fix agent.
const SystemInstructions = `You are an intelligent incident response agent with access to both Datadog and GitHub.

Your mission: detect, analyze, and fix incidents automatically. Use the
Datadog tools to inspect monitors and the GitHub tools to read code, create
branches, commit changes, and open pull requests.`

// Report is the structured outcome of one workflow run.
type Report struct {
	// Monitor is the name of the alerting monitor the agent worked on.
	Monitor string `json:"monitor"`
	// Service is the affected service or repository.
	Service string `json:"service"`
	// RootCause explains what is wrong and why it causes the alert.
	RootCause string `json:"root_cause"`
	// Fix summarizes the proposed or applied code change.
	Fix string `json:"fix"`
	// PullRequestURL is set when the agent opened a PR, empty otherwise.
	PullRequestURL string `json:"pull_request_url,omitempty"`
}

// Options tune a workflow run.
type Options struct {
	// Repository optionally pins the investigation to one repository
	// ("owner/name"). When empty the agent infers the repository from
	// the alert.
	Repository string
}

const workflowTemplate = `Detect, analyze, and fix the most critical incident. Work through these steps:

STEP 1: DETECT
- Check Datadog for any alerting monitors
- Identify the most critical alert

STEP 2: ANALYZE
- Understand what the alert is about
- Determine which service/repository is affected
- Identify the likely root cause

STEP 3: INVESTIGATE CODE
- Access the GitHub repository for the affected service
- Read the relevant code files and understand the codebase structure
{{repository_hint}}

STEP 4: DIAGNOSE
- Based on the alert and the code, identify the exact issue
- Explain what's wrong and why it's causing the alert

STEP 5: PROPOSE FIX
- Suggest a code fix for the issue
- Explain why this fix will resolve the alert

STEP 6: CREATE PR (if appropriate)
- Create a new branch, make the code changes, and open a pull request with:
  - Clear title referencing the Datadog alert
  - Description explaining the issue and fix
  - Link to the Datadog monitor

When you are done, answer with ONLY a JSON object matching this schema:

{{response_schema}}`

// Prompt builds the workflow prompt for one run.
func Prompt(opts Options) (string, error) {
	p, err := promptbuilder.New(workflowTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing workflow template: %w", err)
	}

	hint := "- Pick the repository yourself based on the alert"
	if opts.Repository != "" {
		hint = fmt.Sprintf("- Investigate the %s repository", opts.Repository)
	}
	if p, err = p.Bind("repository_hint", hint); err != nil {
		return "", err
	}

	if p, err = p.BindJSON("response_schema", schema.ReflectType[Report]()); err != nil {
		return "", err
	}
	return p.Build()
}

// ParseReport extracts the structured report from the agent's final answer.
func ParseReport(text string) (Report, error) {
	report, err := result.Extract[Report](text)
	if err != nil {
		return Report{}, fmt.Errorf("parsing incident report: %w", err)
	}
	if report.RootCause == "" {
		return Report{}, fmt.Errorf("incident report missing root_cause")
	}
	return report, nil
}
