/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpservers

import (
	"context"
	"maps"
	"slices"

	"github.com/chainguard-dev/clog"
)

// constructor builds the descriptor map for one external server.
type constructor func(context.Context) (map[string]ServerConfig, error)

// constructors lists every server this project knows how to launch.
// Add new servers (JIRA, PagerDuty, ...) here.
var constructors = map[string]constructor{
	"datadog": Datadog,
	"github":  GitHub,
}

// All merges the descriptors of every configured server. A server whose
// constructor fails (missing credentials, binary not installed) is omitted
// with a warning rather than failing the whole set, so a partially
// configured environment still yields a usable agent.
func All(ctx context.Context) map[string]ServerConfig {
	log := clog.FromContext(ctx)

	servers := map[string]ServerConfig{}
	// Sorted so skip warnings come out in a stable order.
	for _, name := range slices.Sorted(maps.Keys(constructors)) {
		cfgs, err := constructors[name](ctx)
		if err != nil {
			log.Warnf("Skipping MCP server %s: %v", name, err)
			continue
		}
		maps.Copy(servers, cfgs)
	}
	return servers
}
