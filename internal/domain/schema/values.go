package schema

import (
	"encoding/json"
	"math"
	"strings"
)

// Truthy reports whether v holds a non-empty value: not nil, not "", not
// zero, not false and not an empty collection.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		return t != "" && t != "0"
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	}
	return true
}

// Present reports whether an optional field was supplied: v is neither nil nor "".
func Present(v any) bool {
	if v == nil {
		return false
	}
	s, ok := v.(string)
	return !ok || s != ""
}

// Int converts v to an integer when it holds an integral number. Booleans,
// strings and fractional values are rejected.
func Int(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) || math.IsNaN(t) {
			return 0, false
		}
		return int64(t), true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	}
	return 0, false
}

// String returns v as a string, or "" when v is not a string.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// IntInRange reports whether v is an integer within [lo, hi].
func IntInRange(v any, lo, hi int64) bool {
	n, ok := Int(v)
	return ok && n >= lo && n <= hi
}

// SplitList splits a comma-separated string, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
