package driver

// lookup walks doc along path and returns the entry it lands on.
func lookup(doc map[string]any, path []string) (any, bool) {
	var current any = doc
	for _, seg := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// put stores value at path inside doc, creating intermediate maps as needed.
// A non-map entry sitting where an intermediate map belongs is replaced.
func put(doc map[string]any, path []string, value any) {
	current := doc
	for _, seg := range path[:len(path)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	current[path[len(path)-1]] = value
}

// remove deletes the entry at path inside doc. Missing intermediates are a no-op.
func remove(doc map[string]any, path []string) {
	current := doc
	for _, seg := range path[:len(path)-1] {
		next, ok := current[seg].(map[string]any)
		if !ok {
			return
		}
		current = next
	}
	delete(current, path[len(path)-1])
}

// copyValue clones a JSON-like value so stored documents never alias caller
// memory in either direction.
func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}
