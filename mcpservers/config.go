/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpservers

import (
	"fmt"
	"sort"
	"strings"
)

// Transport identifies how an MCP server is reached.
type Transport string

const (
	// TransportStdio spawns the server as a subprocess and speaks the
	// protocol over its stdin/stdout. This is the only transport the
	// bundled servers use.
	TransportStdio Transport = "stdio"
)

// ServerConfig describes how to launch a single MCP server process.
type ServerConfig struct {
	// Transport selects the communication protocol.
	Transport Transport

	// Command is the executable to spawn.
	Command string

	// Args are command-line arguments for the subprocess.
	Args []string

	// Env holds extra environment variables for the subprocess,
	// typically the credentials the server needs.
	Env map[string]string
}

// Environ renders the Env map as KEY=VALUE pairs in sorted order,
// suitable for appending to a subprocess environment.
func (c ServerConfig) Environ() []string {
	if len(c.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", k, c.Env[k]))
	}
	return env
}

// Validate checks that the descriptor is complete enough to launch.
func (c ServerConfig) Validate() error {
	if c.Transport != TransportStdio {
		return fmt.Errorf("unsupported transport %q", c.Transport)
	}
	if c.Command == "" {
		return fmt.Errorf("server command cannot be empty")
	}
	return nil
}

// isPlaceholder reports whether an env value is one of the sample values
// shipped in .env.example rather than a real credential.
func isPlaceholder(v string) bool {
	return strings.HasPrefix(v, "your_") && strings.HasSuffix(v, "_here")
}
