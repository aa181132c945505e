// Package attrs reads values back out of slog-style key-value attribute
// slices, so audit events can reuse the attributes already prepared for a
// log line.
package attrs

// ExtractString returns the value paired with key in a
// [k1, v1, k2, v2, ...] slice. Missing keys and non-string values yield "".
func ExtractString(attrs []any, key string) string {
	for i := 0; i+1 < len(attrs); i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		if v, ok := attrs[i+1].(string); ok {
			return v
		}
	}
	return ""
}
