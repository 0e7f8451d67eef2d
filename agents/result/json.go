/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package result extracts structured payloads from model text. Models are
// asked to answer with JSON but routinely wrap it in markdown fences or
// prose, so extraction is forgiving about the surroundings.
package result

import (
	"encoding/json"
	"strings"
)

// ExtractJSON returns the JSON payload of a model response. It prefers the
// first ```json fenced block; absent one, it strips any bare fences and
// surrounding whitespace and returns what remains.
func ExtractJSON(text string) string {
	if block, ok := fencedBlock(text); ok {
		return block
	}

	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// fencedBlock finds the first ```json block delimited by fence lines.
func fencedBlock(text string) (string, bool) {
	var buf strings.Builder
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case !inBlock && line == "```json":
			inBlock = true
		case inBlock && line == "```":
			return strings.TrimSpace(buf.String()), true
		case inBlock:
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(line)
		}
	}
	if inBlock {
		// Unterminated block, common when the model hits max tokens.
		return strings.TrimSpace(buf.String()), true
	}
	return "", false
}

// Extract unmarshals the JSON payload of a model response into T.
func Extract[T any](text string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &out); err != nil {
		return out, err
	}
	return out, nil
}
