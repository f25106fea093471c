// Package collection provides small generic helpers for string-keyed maps.
package collection

// Only returns a new map holding the entries of m whose keys are listed.
// Keys missing from m are skipped.
func Only[M ~map[string]V, V any](m M, keys ...string) M {
	out := make(M, len(keys))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Except returns a new map holding every entry of m except the listed keys.
func Except[M ~map[string]V, V any](m M, keys ...string) M {
	skip := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		skip[k] = struct{}{}
	}
	out := make(M, len(m))
	for k, v := range m {
		if _, ok := skip[k]; ok {
			continue
		}
		out[k] = v
	}
	return out
}
