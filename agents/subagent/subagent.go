/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package subagent lets a parent agent delegate work to named agents with
// their own instructions. Each registered subagent is exposed to the parent
// as a delegate_<name> tool; calling it runs a nested conversation with the
// subagent's instructions and the delegated task, against the same MCP
// servers.
package subagent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/opsmend/opsmend/agents/agenttrace"
	"github.com/opsmend/opsmend/agents/mcptool"
	"github.com/opsmend/opsmend/agents/schema"
)

// Definition describes one subagent.
type Definition struct {
	// Name identifies the subagent; it becomes part of the delegate tool
	// name, so it must be a valid tool-name fragment.
	Name string `yaml:"name" json:"name"`

	// Description tells the parent agent when to delegate here.
	Description string `yaml:"description" json:"description"`

	// Instructions is the subagent's system prompt.
	Instructions string `yaml:"instructions" json:"instructions"`

	// Model optionally overrides the parent's model for this subagent.
	Model string `yaml:"model,omitempty" json:"model,omitempty"`
}

var nameRE = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks the definition is complete and its name is usable as a
// tool-name fragment.
func (d Definition) Validate() error {
	if !nameRE.MatchString(d.Name) {
		return fmt.Errorf("subagent name %q must match %s", d.Name, nameRE)
	}
	if d.Description == "" {
		return fmt.Errorf("subagent %s: description cannot be empty", d.Name)
	}
	if d.Instructions == "" {
		return fmt.Errorf("subagent %s: instructions cannot be empty", d.Name)
	}
	return nil
}

// ToolName returns the delegate tool name the parent sees.
func (d Definition) ToolName() string {
	return "delegate_" + d.Name
}

// Runner executes a delegated task as the given subagent and returns the
// subagent's final answer.
type Runner func(ctx context.Context, def Definition, task string) (string, error)

// delegateInput is the input schema of every delegate tool.
type delegateInput struct {
	Task string `json:"task" jsonschema:"required,description=The complete task for the subagent; it does not see the parent conversation"`
}

// DelegateTools converts the definitions into executor tools backed by run.
func DelegateTools(defs []Definition, run Runner) (map[string]mcptool.Metadata, error) {
	props, required, err := schema.Properties(schema.ReflectType[delegateInput]())
	if err != nil {
		return nil, fmt.Errorf("building delegate input schema: %w", err)
	}

	tools := make(map[string]mcptool.Metadata, len(defs))
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		tools[def.ToolName()] = mcptool.Metadata{
			Definition: anthropic.ToolParam{
				Name:        def.ToolName(),
				Description: anthropic.String(fmt.Sprintf("Delegate a task to the %s subagent. %s", def.Name, def.Description)),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: props,
					Required:   required,
				},
			},
			Handler: delegateHandler(def, run),
		}
	}
	return tools, nil
}

func delegateHandler(def Definition, run Runner) func(ctx context.Context, toolUse anthropic.ToolUseBlock) map[string]any {
	return func(ctx context.Context, toolUse anthropic.ToolUseBlock) map[string]any {
		trace := agenttrace.FromContext(ctx)

		var input delegateInput
		if err := json.Unmarshal(toolUse.Input, &input); err != nil {
			trace.BadToolCall(toolUse.ID, toolUse.Name, nil, fmt.Errorf("parsing delegate input: %w", err))
			return map[string]any{"error": fmt.Sprintf("failed to parse delegate input: %v", err)}
		}
		if input.Task == "" {
			err := fmt.Errorf("delegate task cannot be empty")
			trace.BadToolCall(toolUse.ID, toolUse.Name, nil, err)
			return map[string]any{"error": err.Error()}
		}

		answer, err := run(ctx, def, input.Task)
		if err != nil {
			trace.BadToolCall(toolUse.ID, toolUse.Name, map[string]any{"task": input.Task}, err)
			return map[string]any{"error": fmt.Sprintf("subagent %s failed: %v", def.Name, err)}
		}

		trace.RecordToolCall(toolUse.ID, toolUse.Name, map[string]any{"task": input.Task}, answer)
		return map[string]any{"result": answer}
	}
}
