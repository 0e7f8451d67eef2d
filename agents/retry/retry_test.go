/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("rate limited")

func fastConfig(maxRetries int) Config {
	return Config{
		MaxRetries:  maxRetries,
		BaseBackoff: time.Millisecond,
		MaxBackoff:  5 * time.Millisecond,
		MaxJitter:   time.Millisecond,
	}
}

func TestDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(3), "op", func(error) bool { return true }, func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() returned error: %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("Do() = %q after %d calls, want %q after 1", got, calls, "ok")
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(3), "op", func(err error) bool { return errors.Is(err, errTransient) }, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errTransient
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do() returned error: %v", err)
	}
	if got != 42 || calls != 3 {
		t.Errorf("Do() = %d after %d calls, want 42 after 3", got, calls)
	}
}

func TestDoStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("invalid request")
	calls := 0
	_, err := Do(context.Background(), fastConfig(3), "op", func(err error) bool { return errors.Is(err, errTransient) }, func() (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Do() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("Do() made %d calls, want 1", calls)
	}
}

func TestDoExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(2), "op", func(error) bool { return true }, func() (int, error) {
		calls++
		return 0, errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Errorf("Do() error = %v, want wrapped %v", err, errTransient)
	}
	if calls != 3 {
		t.Errorf("Do() made %d calls, want 3 (1 + 2 retries)", calls)
	}
}

func TestDoZeroRetries(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(0), "op", func(error) bool { return true }, func() (int, error) {
		calls++
		return 0, errTransient
	})
	if !errors.Is(err, errTransient) {
		t.Errorf("Do() error = %v, want %v", err, errTransient)
	}
	if calls != 1 {
		t.Errorf("Do() made %d calls, want 1", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Do(ctx, Config{MaxRetries: 5, BaseBackoff: time.Minute, MaxBackoff: time.Minute, MaxJitter: time.Millisecond}, "op", func(error) bool { return true }, func() (int, error) {
		return 0, errTransient
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{{
		name: "default is valid",
		cfg:  Default(),
	}, {
		name:    "negative retries",
		cfg:     Config{MaxRetries: -1},
		wantErr: true,
	}, {
		name:    "negative base backoff",
		cfg:     Config{BaseBackoff: -time.Second},
		wantErr: true,
	}, {
		name:    "negative max backoff",
		cfg:     Config{MaxBackoff: -time.Second},
		wantErr: true,
	}, {
		name:    "negative jitter",
		cfg:     Config{MaxJitter: -time.Second},
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
