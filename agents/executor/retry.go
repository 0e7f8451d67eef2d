/*
Copyright 2026 Opsmend Authors
SPDX-License-Identifier: Apache-2.0
*/

package executor

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
)

// isRetryableAPIError reports whether an error is a transient Anthropic
// API error: rate limits, overload, and gateway timeouts.
func isRetryableAPIError(err error) bool {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503, 504, 529:
			return true
		}
	}
	return false
}
