/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package mcpclient dials MCP servers described by mcpservers.ServerConfig
// and exposes their tools to the agent runtime. Each Session owns one
// server subprocess for its lifetime.
package mcpclient
