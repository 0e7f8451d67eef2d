/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package mcpservers assembles launch descriptors for the external MCP
// servers this project depends on. Each server gets one constructor that
// reads its credentials from the environment and returns a map from server
// name to ServerConfig, plus a tolerant aggregator that merges them all.
//
// The descriptors only describe how to spawn a server process; connecting
// to one and speaking the protocol lives in package mcpclient.
package mcpservers
