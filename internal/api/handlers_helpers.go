// Reelmatch - Content-Based Movie Similarity Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"fmt"
	"strings"
)

// maxLogValueLength truncates client-controlled values before logging.
const maxLogValueLength = 256

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines, and truncates long values.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(min(len(s), maxLogValueLength))
	n := 0
	for _, r := range s {
		if n >= maxLogValueLength {
			result.WriteString("...")
			break
		}
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
		n++
	}
	return result.String()
}
