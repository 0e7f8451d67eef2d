/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpservers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeFakeServer drops an executable file to stand in for github-mcp-server.
func writeFakeServer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "github-mcp-server")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("writing fake server: %v", err)
	}
	return path
}

func TestGitHub(t *testing.T) {
	fake := writeFakeServer(t)

	tests := []struct {
		name    string
		env     map[string]string
		want    map[string]ServerConfig
		wantErr string
	}{{
		name: "configured with explicit server path",
		env: map[string]string{
			"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_abc123",
			"GITHUB_MCP_SERVER":            fake,
		},
		want: map[string]ServerConfig{
			"github": {
				Transport: TransportStdio,
				Command:   fake,
				Args:      []string{"stdio"},
				Env: map[string]string{
					"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_abc123",
				},
			},
		},
	}, {
		name: "missing token",
		env: map[string]string{
			"GITHUB_MCP_SERVER": fake,
		},
		wantErr: "GITHUB_PERSONAL_ACCESS_TOKEN",
	}, {
		name: "placeholder token",
		env: map[string]string{
			"GITHUB_PERSONAL_ACCESS_TOKEN": "your_github_token_here",
			"GITHUB_MCP_SERVER":            fake,
		},
		wantErr: "GITHUB_PERSONAL_ACCESS_TOKEN",
	}, {
		name: "server override does not exist",
		env: map[string]string{
			"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_abc123",
			"GITHUB_MCP_SERVER":            filepath.Join(t.TempDir(), "missing"),
		},
		wantErr: "GITHUB_MCP_SERVER",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearServerEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := GitHub(context.Background())
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("GitHub() = %v, want error containing %q", got, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GitHub() returned unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("GitHub() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestServerConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServerConfig
		wantErr bool
	}{{
		name: "valid stdio descriptor",
		cfg:  ServerConfig{Transport: TransportStdio, Command: "datadog-mcp-server"},
	}, {
		name:    "unsupported transport",
		cfg:     ServerConfig{Transport: "sse", Command: "datadog-mcp-server"},
		wantErr: true,
	}, {
		name:    "missing transport",
		cfg:     ServerConfig{Command: "datadog-mcp-server"},
		wantErr: true,
	}, {
		name:    "empty command",
		cfg:     ServerConfig{Transport: TransportStdio},
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

func TestServerConfigEnviron(t *testing.T) {
	cfg := ServerConfig{
		Transport: TransportStdio,
		Command:   "datadog-mcp-server",
		Env: map[string]string{
			"DD_SITE":    "datadoghq.com",
			"DD_API_KEY": "abc",
			"DD_APP_KEY": "def",
		},
	}

	want := []string{
		"DD_API_KEY=abc",
		"DD_APP_KEY=def",
		"DD_SITE=datadoghq.com",
	}
	if diff := cmp.Diff(want, cfg.Environ()); diff != "" {
		t.Errorf("Environ() mismatch (-want +got):\n%s", diff)
	}

	var empty ServerConfig
	if got := empty.Environ(); got != nil {
		t.Errorf("Environ() on empty config = %v, want nil", got)
	}
}
