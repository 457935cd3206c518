// Package storage persists named sets of strings. The recent files list is
// stored under a single key and fully overwritten on every save.
package storage

import "context"

// StringSetStore is a durable key-value store whose values are string sets.
type StringSetStore interface {
	// Strings returns the set stored under key, or an empty slice when absent.
	Strings(ctx context.Context, key string) ([]string, error)
	// SetStrings replaces the set under key. Duplicates in values are dropped.
	SetStrings(ctx context.Context, key string, values []string) error
	Close() error
}

// dedupe keeps the first occurrence of each value and drops empty strings
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
