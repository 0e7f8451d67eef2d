/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package retry implements backoff-with-jitter retries for model API
// calls, where 429 and overloaded errors are a fact of life.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/chainguard-dev/clog"
)

// Config controls retry behavior.
type Config struct {
	// MaxRetries is the number of attempts after the first failure.
	// 0 disables retrying.
	MaxRetries int
	// BaseBackoff is the initial backoff duration; it doubles per attempt.
	BaseBackoff time.Duration
	// MaxBackoff caps the exponential backoff.
	MaxBackoff time.Duration
	// MaxJitter is the upper bound of random jitter added per attempt.
	MaxJitter time.Duration
}

// Validate checks the configuration for negative values.
func (c Config) Validate() error {
	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return errors.New("base backoff cannot be negative")
	}
	if c.MaxBackoff < 0 {
		return errors.New("max backoff cannot be negative")
	}
	if c.MaxJitter < 0 {
		return errors.New("max jitter cannot be negative")
	}
	return nil
}

// Default returns a configuration tuned for quota-style rate limits,
// which need longer recovery windows than ordinary transient errors.
func Default() Config {
	return Config{
		MaxRetries:  5,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  60 * time.Second,
		MaxJitter:   500 * time.Millisecond,
	}
}

// Do runs fn, retrying per cfg whenever retryable classifies the returned
// error as transient. The operation name only appears in logs.
func Do[T any](ctx context.Context, cfg Config, operation string, retryable func(error) bool, fn func() (T, error)) (T, error) {
	log := clog.FromContext(ctx)

	var zero T
	backoff := cfg.BaseBackoff
	for attempt := 0; ; attempt++ {
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !retryable(err) || attempt >= cfg.MaxRetries {
			if attempt > 0 {
				return zero, fmt.Errorf("%s failed after %d retries: %w", operation, attempt, err)
			}
			return zero, err
		}

		delay := backoff + rand.N(cfg.MaxJitter+1)
		log.With("operation", operation).
			With("attempt", attempt+1).
			With("delay", delay).
			Warnf("Retrying after transient error: %v", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}

		backoff *= 2
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
}
