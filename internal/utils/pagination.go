// Package utils provides small, generic helper functions used across
// different layers of the application, independent of domain logic.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi, returning the
// provided default when the string is empty or not a valid integer. Query
// parameters like page and limit rely on this fallback behavior.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
