/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"

	"github.com/opsmend/opsmend/agents/agenttrace"
	"github.com/opsmend/opsmend/agents/mcptool"
	"github.com/opsmend/opsmend/agents/metrics"
	"github.com/opsmend/opsmend/agents/retry"
)

// DefaultModel matches the model the original deployment pinned.
const DefaultModel = "claude-sonnet-4-20250514"

// Interface is the public interface for agent execution.
type Interface interface {
	// Execute runs the conversation until the model produces a final
	// text answer, dispatching tool calls along the way.
	Execute(ctx context.Context, prompt string, tools map[string]mcptool.Metadata) (string, error)
}

type executor struct {
	client             anthropic.Client
	modelName          string
	systemInstructions string
	maxTokens          int64
	temperature        float64
	thinkingBudget     *int64 // nil = disabled
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates an executor with the default model, token, and retry
// configuration, adjusted by opts.
func New(client anthropic.Client, opts ...Option) (Interface, error) {
	e := &executor{
		client:       client,
		modelName:    DefaultModel,
		maxTokens:    4096,
		temperature:  0.1,
		genaiMetrics: metrics.NewGenAI("opsmend.agents"),
		retryConfig:  retry.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	return e, nil
}

// Execute implements Interface.
func (e *executor) Execute(ctx context.Context, prompt string, tools map[string]mcptool.Metadata) (string, error) {
	log := clog.FromContext(ctx)
	trace := agenttrace.FromContext(ctx)

	toolDefs := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, meta := range tools {
		def := meta.Definition
		toolDefs = append(toolDefs, anthropic.ToolUnionParam{OfTool: &def})
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
		Tools: toolDefs,
	}
	params.Temperature = anthropic.Float(e.temperature)
	if e.systemInstructions != "" {
		params.System = []anthropic.TextBlockParam{{Text: e.systemInstructions}}
	}
	if e.thinkingBudget != nil {
		params.Thinking = anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: *e.thinkingBudget,
			},
		}
		// Thinking requires temperature 1.0.
		params.Temperature = anthropic.Float(1.0)
	}

	log.With("prompt_length", len(prompt)).
		With("tools", len(tools)).
		Info("Starting agent execution")

	for {
		message, err := retry.Do(ctx, e.retryConfig, "stream_message", isRetryableAPIError, func() (anthropic.Message, error) {
			stream := e.client.Messages.NewStreaming(ctx, params)
			var msg anthropic.Message
			for stream.Next() {
				event := stream.Current()
				if err := msg.Accumulate(event); err != nil {
					return msg, fmt.Errorf("accumulating stream event: %w", err)
				}
			}
			if err := stream.Err(); err != nil {
				return msg, err
			}
			return msg, nil
		})
		if err != nil {
			return "", fmt.Errorf("streaming model response: %w", err)
		}

		if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
			e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
			trace.RecordTokenUsage(e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
		}

		var toolUses []anthropic.ToolUseBlock
		var text string
		for _, content := range message.Content {
			switch content.Type {
			case "text":
				text = content.Text
			case "tool_use":
				toolUses = append(toolUses, anthropic.ToolUseBlock{
					ID:    content.ID,
					Name:  content.Name,
					Input: content.Input,
				})
			case "thinking", "redacted_thinking":
				trace.RecordReasoning(content.Thinking)
			}
		}

		if len(toolUses) > 0 {
			params.Messages = append(params.Messages, message.ToParam())

			var results []anthropic.ContentBlockParamUnion
			for _, toolUse := range toolUses {
				e.genaiMetrics.RecordToolCall(ctx, e.modelName, toolUse.Name)
				block, err := e.dispatch(ctx, toolUse, tools)
				if err != nil {
					return "", err
				}
				results = append(results, block)
			}

			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: results,
			})
			continue
		}

		if text != "" {
			log.Info("Agent execution complete")
			return text, nil
		}
		return "", errors.New("no content in model response")
	}
}

// dispatch executes a single tool call and wraps its result for the model.
func (e *executor) dispatch(ctx context.Context, toolUse anthropic.ToolUseBlock, tools map[string]mcptool.Metadata) (anthropic.ContentBlockParamUnion, error) {
	log := clog.FromContext(ctx)
	log.With("tool", toolUse.Name).
		With("id", toolUse.ID).
		Info("Executing tool call")

	var result map[string]any
	if meta, ok := tools[toolUse.Name]; ok {
		result = meta.Handler(ctx, toolUse)
	} else {
		log.With("tool", toolUse.Name).Error("Unknown tool requested")
		agenttrace.FromContext(ctx).BadToolCall(toolUse.ID, toolUse.Name,
			map[string]any{"input": string(toolUse.Input)},
			fmt.Errorf("unknown tool: %q", toolUse.Name))
		result = map[string]any{"error": fmt.Sprintf("unknown tool: %q", toolUse.Name)}
	}

	resultBytes, err := json.Marshal(result)
	if err != nil {
		return anthropic.ContentBlockParamUnion{}, fmt.Errorf("marshaling tool result: %w", err)
	}

	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: toolUse.ID,
			Content: []anthropic.ToolResultBlockParamContentUnion{{
				OfText: &anthropic.TextBlockParam{Text: string(resultBytes)},
			}},
		},
	}, nil
}
