package rules

import (
	"fmt"
)

// enumOpt returns option idx, or def when absent, rejecting values outside
// allowed. Numbers compare by value regardless of their decoded type.
func enumOpt(opts []any, idx int, def any, allowed ...any) (any, error) {
	if idx >= len(opts) {
		return def, nil
	}
	v := opts[idx]
	for _, a := range allowed {
		if sameValue(a, v) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("option %d: unexpected value %v", idx, v)
}

// objOpt returns option idx as an object, or an empty one when absent.
func objOpt(opts []any, idx int) (map[string]any, error) {
	if idx >= len(opts) {
		return map[string]any{}, nil
	}
	m, ok := opts[idx].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("option %d: expected an object, got %T", idx, opts[idx])
	}
	return m, nil
}

func boolProp(m map[string]any, name string, def bool) (bool, error) {
	v, ok := m[name]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("property %q: expected a boolean, got %T", name, v)
	}
	return b, nil
}

func sameValue(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
