package utils

import "strings"

// Truncate trims s and shortens it to limit runes, appending an ellipsis when
// anything was cut. A non-positive limit yields an empty string.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
