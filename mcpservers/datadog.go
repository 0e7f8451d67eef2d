/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpservers

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/sethvargo/go-envconfig"
)

// DatadogCommand is the binary the Datadog descriptor launches.
// Installed with: npm install -g datadog-mcp-server
const DatadogCommand = "datadog-mcp-server"

type datadogEnv struct {
	APIKey string `env:"DD_API_KEY"`
	AppKey string `env:"DD_APP_KEY"`
	Site   string `env:"DD_SITE,default=datadoghq.com"`
}

// Datadog builds the launch descriptor for the Datadog MCP server from
// DD_API_KEY, DD_APP_KEY, and DD_SITE. It returns an error naming the
// missing variable when a required credential is absent or still set to
// its sample placeholder value.
func Datadog(ctx context.Context) (map[string]ServerConfig, error) {
	var env datadogEnv
	if err := envconfig.Process(ctx, &env); err != nil {
		return nil, fmt.Errorf("reading Datadog environment: %w", err)
	}

	if env.APIKey == "" || isPlaceholder(env.APIKey) {
		return nil, fmt.Errorf("DD_API_KEY environment variable not set; set it in .env or export it")
	}
	if env.AppKey == "" || isPlaceholder(env.AppKey) {
		return nil, fmt.Errorf("DD_APP_KEY environment variable not set; set it in .env or export it")
	}

	return map[string]ServerConfig{
		"datadog": {
			Transport: TransportStdio,
			Command:   DatadogCommand,
			Env: map[string]string{
				"DD_API_KEY": env.APIKey,
				"DD_APP_KEY": env.AppKey,
				"DD_SITE":    env.Site,
			},
		},
	}, nil
}

// LookupDatadogServer resolves the Datadog MCP server binary on PATH.
// It exists so drivers can fail fast with an install hint before handing
// the descriptor to the agent runtime.
func LookupDatadogServer() (string, error) {
	path, err := exec.LookPath(DatadogCommand)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH; install it with: npm install -g %s", DatadogCommand, DatadogCommand)
	}
	return path, nil
}
