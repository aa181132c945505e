// Package strings normalizes configured string lists, such as the
// comma-separated broker list the audit publisher consumes.
package strings

import "strings"

// DedupeAndTrim trims each element, drops empties, and removes duplicates.
// First-seen order is preserved.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
