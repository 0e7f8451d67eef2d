/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpclient

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// FlattenContent joins the text blocks of a tool result into one string.
// Non-text blocks (images, embedded resources) are summarized by type so
// the model still learns they were present.
func FlattenContent(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		switch block := c.(type) {
		case mcp.TextContent:
			parts = append(parts, block.Text)
		case mcp.ImageContent:
			parts = append(parts, fmt.Sprintf("[image content: %s]", block.MIMEType))
		default:
			parts = append(parts, fmt.Sprintf("[%T content omitted]", c))
		}
	}
	return strings.Join(parts, "\n")
}
