package validator

import (
	"fmt"
	"math"
	"strings"
)

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// isSet reports whether m has key with a non-null, non-empty value
func isSet(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

// isScalar reports whether v is neither a mapping nor a sequence
func isScalar(v any) bool {
	if _, ok := asMap(v); ok {
		return false
	}
	if _, ok := asSlice(v); ok {
		return false
	}
	return true
}

// scalarText renders a scalar for comparison against an enumeration
func scalarText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// toInt converts any decoded YAML number holding an integral value
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// stringValue returns m[key] when it is a string
func stringValue(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
