/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpservers

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/chainguard-dev/clog"
)

func TestAllOmitsFailedServers(t *testing.T) {
	clearServerEnv(t)
	// Only Datadog is configured; the GitHub constructor must fail and
	// be omitted rather than sinking the whole set.
	t.Setenv("DD_API_KEY", "abc123")
	t.Setenv("DD_APP_KEY", "def456")

	servers := All(context.Background())

	if _, ok := servers["datadog"]; !ok {
		t.Error("All() is missing the datadog server")
	}
	if _, ok := servers["github"]; ok {
		t.Error("All() included github despite missing credentials")
	}
	if len(servers) != 1 {
		t.Errorf("All() returned %d servers, want 1", len(servers))
	}
}

func TestAllEmptyEnvironment(t *testing.T) {
	clearServerEnv(t)

	if servers := All(context.Background()); len(servers) != 0 {
		t.Errorf("All() = %v, want empty map", servers)
	}
}

func TestAllWarnsInStableOrder(t *testing.T) {
	clearServerEnv(t)

	var buf bytes.Buffer
	ctx := clog.WithLogger(context.Background(),
		clog.NewLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	if servers := All(ctx); len(servers) != 0 {
		t.Fatalf("All() = %v, want empty map", servers)
	}

	out := buf.String()
	dd := strings.Index(out, "Skipping MCP server datadog")
	gh := strings.Index(out, "Skipping MCP server github")
	if dd == -1 || gh == -1 {
		t.Fatalf("missing skip warnings:\n%s", out)
	}
	if dd > gh {
		t.Errorf("skip warnings out of order:\n%s", out)
	}
}
