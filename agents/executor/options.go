/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package executor

import (
	"fmt"
	"strings"

	"github.com/opsmend/opsmend/agents/retry"
)

// Option is a functional option for configuring the executor.
type Option func(*executor) error

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(e *executor) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		e.modelName = model
		return nil
	}
}

// WithMaxTokens sets the maximum tokens per response.
func WithMaxTokens(tokens int64) Option {
	return func(e *executor) error {
		if tokens <= 0 {
			return fmt.Errorf("max tokens must be positive, got %d", tokens)
		}
		e.maxTokens = tokens
		return nil
	}
}

// WithTemperature sets the sampling temperature, 0.0 through 1.0.
func WithTemperature(temp float64) Option {
	return func(e *executor) error {
		if temp < 0.0 || temp > 1.0 {
			return fmt.Errorf("temperature must be between 0.0 and 1.0, got %f", temp)
		}
		e.temperature = temp
		return nil
	}
}

// WithSystemInstructions sets the system prompt.
func WithSystemInstructions(instructions string) Option {
	return func(e *executor) error {
		if instructions == "" {
			return fmt.Errorf("system instructions cannot be empty")
		}
		e.systemInstructions = instructions
		return nil
	}
}

// WithThinking enables extended thinking with the given token budget.
// The budget must be at least 1024 and below max tokens.
func WithThinking(budgetTokens int64) Option {
	return func(e *executor) error {
		if budgetTokens < 1024 {
			return fmt.Errorf("thinking budget must be at least 1024 tokens, got %d", budgetTokens)
		}
		if budgetTokens >= e.maxTokens {
			return fmt.Errorf("thinking budget (%d) must be less than max tokens (%d)", budgetTokens, e.maxTokens)
		}
		e.thinkingBudget = &budgetTokens
		return nil
	}
}

// WithRetryConfig overrides retry behavior for transient API errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(e *executor) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		e.retryConfig = cfg
		return nil
	}
}
