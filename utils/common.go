package utils

import (
	"regexp"
	"strings"
)

var (
	whitespacePattern  = regexp.MustCompile(`\s+`)
	unsafeCharsPattern = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// SafeFilename converts a CVE ID or title into a name that is safe to use
// as a filename on every supported platform. Whitespace collapses to single
// underscores, everything outside [A-Za-z0-9_.-] is stripped and leading or
// trailing underscores are trimmed.
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = whitespacePattern.ReplaceAllString(name, "_")
	name = unsafeCharsPattern.ReplaceAllString(name, "")
	return strings.Trim(name, "_")
}

// CollapseWhitespace trims a string and collapses every run of whitespace
// into a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DeduplicateSlice deduplicates a slice in O(n) out of place.
func DeduplicateSlice[T any](slice []T, idFunc func(t T) string) []T {
	deduplicatedSlice := make([]T, 0, len(slice))
	seen := make(map[string]struct{}, len(slice))
	for i := range slice {
		id := idFunc(slice[i])
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduplicatedSlice = append(deduplicatedSlice, slice[i])
	}
	return deduplicatedSlice
}

func Map[T, U any](s []T, f func(T) U) []U {
	r := make([]U, len(s))
	for i, v := range s {
		r[i] = f(v)
	}
	return r
}
