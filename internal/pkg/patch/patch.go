// Package patch resolves optional request fields to concrete values.
package patch

import "strings"

// Text trims *ptr and returns fallback when the field is absent or blank.
func Text(ptr *string, fallback string) string {
	if ptr == nil {
		return fallback
	}
	if v := strings.TrimSpace(*ptr); v != "" {
		return v
	}
	return fallback
}
