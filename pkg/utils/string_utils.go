package utils

import "strings"

// NewNullString returns nil for blank strings, otherwise a pointer to the trimmed value.
// Optional text columns are stored as NULL rather than ''.
func NewNullString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
