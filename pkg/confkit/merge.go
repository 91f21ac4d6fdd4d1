package confkit

// deepCopy clones a JSON-like value (maps, slices, scalars). Scalars are
// returned as-is; maps and slices are copied recursively so callers can
// mutate the result without touching registered or stored state.
func deepCopy(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

// overlay copies defaults and lays stored entries over it, one level deep.
// Stored top-level keys replace the corresponding default wholesale; defaults
// nested under untouched keys survive intact. Deeper defaults for partially
// stored subtrees surface through nested accessor lookups, not here.
func overlay(defaults, stored map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(stored))
	for k, v := range defaults {
		out[k] = deepCopy(v)
	}
	for k, v := range stored {
		out[k] = deepCopy(v)
	}
	return out
}

// isMutableContainer reports whether v is a value Update can operate on.
func isMutableContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}
