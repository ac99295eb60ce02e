package template

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
)

// builtinHelpers returns a fresh helper map
func builtinHelpers() map[string]interface{} {
	return map[string]interface{}{
		"if_eq":     ifEq,
		"unless_eq": unlessEq,
		"uppercase": func(str string) string { return strings.ToUpper(str) },
		"lowercase": func(str string) string { return strings.ToLower(str) },
		"trim":      func(str string) string { return strings.TrimSpace(str) },
		"default": func(value interface{}, defaultValue interface{}) interface{} {
			if value == nil || normalize(value) == "" {
				return defaultValue
			}
			return value
		},
		"eq": func(a, b interface{}) bool { return strictEqual(a, b) },
		"ne": func(a, b interface{}) bool { return !strictEqual(a, b) },
		"contains": func(str, substr string) bool {
			return strings.Contains(str, substr)
		},
		"join": func(arr []interface{}, sep string) string {
			strs := make([]string, len(arr))
			for i, v := range arr {
				strs[i] = fmt.Sprint(normalize(v))
			}
			return strings.Join(strs, sep)
		},
		"len": func(value interface{}) int {
			switch v := value.(type) {
			case string:
				return len(v)
			case raymond.SafeString:
				return len(v)
			case []interface{}:
				return len(v)
			case map[string]interface{}:
				return len(v)
			default:
				return 0
			}
		},
	}
}

func ifEq(a, b interface{}, options *raymond.Options) string {
	if strictEqual(a, b) {
		return options.Fn()
	}
	return options.Inverse()
}

func unlessEq(a, b interface{}, options *raymond.Options) string {
	if strictEqual(a, b) {
		return options.Inverse()
	}
	return options.Fn()
}

// strictEqual compares without type coercion between kinds: "1" != 1,
// but int 1 == float64 1 and SafeString "a" == "a".
func strictEqual(a, b interface{}) bool {
	return normalize(a) == normalize(b)
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case raymond.SafeString:
		return string(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case uint:
		return float64(t)
	case uint64:
		return float64(t)
	case string, bool, float64, nil:
		return t
	default:
		// Maps and slices are never equal to a literal
		return fmt.Sprintf("%p", &v)
	}
}
