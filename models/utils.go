package models

import "strings"

// StringPtr returns a pointer to s. Handy for building partial updates.
func StringPtr(s string) *string {
	return &s
}

// TrimmedOr returns the trimmed value of s, or def when s is blank.
func TrimmedOr(s, def string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return def
}
