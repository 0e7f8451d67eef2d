/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpservers

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// githubCommand is the binary name of the GitHub MCP server.
// Installed with: go install github.com/github/github-mcp-server/cmd/github-mcp-server@latest
const githubCommand = "github-mcp-server"

type githubEnv struct {
	Token string `env:"GITHUB_PERSONAL_ACCESS_TOKEN"`

	// ServerPath overrides binary resolution, mostly for tests and
	// non-standard GOBIN layouts.
	ServerPath string `env:"GITHUB_MCP_SERVER"`
}

// GitHub builds the launch descriptor for the GitHub MCP server from
// GITHUB_PERSONAL_ACCESS_TOKEN. The server binary is resolved from
// GITHUB_MCP_SERVER if set, then ~/go/bin, then PATH.
func GitHub(ctx context.Context) (map[string]ServerConfig, error) {
	var env githubEnv
	if err := envconfig.Process(ctx, &env); err != nil {
		return nil, fmt.Errorf("reading GitHub environment: %w", err)
	}

	if env.Token == "" || isPlaceholder(env.Token) {
		return nil, fmt.Errorf("GITHUB_PERSONAL_ACCESS_TOKEN not set; create a token at https://github.com/settings/tokens with scopes: repo, read:org, read:user, workflow")
	}

	command, err := resolveGitHubServer(env.ServerPath)
	if err != nil {
		return nil, err
	}

	return map[string]ServerConfig{
		"github": {
			Transport: TransportStdio,
			Command:   command,
			Args:      []string{"stdio"},
			Env: map[string]string{
				"GITHUB_PERSONAL_ACCESS_TOKEN": env.Token,
			},
		},
	}, nil
}

// resolveGitHubServer locates the github-mcp-server binary.
func resolveGitHubServer(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("GITHUB_MCP_SERVER points at %q but it is not accessible: %w", override, err)
		}
		return override, nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, "go", "bin", githubCommand)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(githubCommand); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%s not found; install it with: go install github.com/github/github-mcp-server/cmd/%s@latest", githubCommand, githubCommand)
}
