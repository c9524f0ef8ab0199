package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToNumber converts v to a finite, non-negative float64.
// Anything that is not a number, or does not parse as one, becomes 0.
func ToNumber(v any) float64 {
	var (
		n   float64
		err error
	)

	switch value := v.(type) {
	case nil:
		return 0
	case string:
		n, err = cast.ToFloat64E(strings.TrimSpace(value))
	case json.Number:
		n, err = value.Float64()
	case map[string]any, []any:
		return 0
	default:
		n, err = cast.ToFloat64E(value)
	}

	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}

// ToSlice returns v when it already is a sequence and an empty one otherwise.
func ToSlice(v any) []any {
	switch items := v.(type) {
	case []any:
		if items == nil {
			return []any{}
		}
		return items
	case []map[string]any:
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = item
		}
		return out
	default:
		return []any{}
	}
}

func toPercentage(v any) float64 {
	return math.Min(ToNumber(v), 100)
}

// toLabel renders scalar values as text. Objects and sequences have no
// sensible label and yield "".
func toLabel(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return ""
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case map[string]any, []any:
		return ""
	default:
		s, err := cast.ToStringE(value)
		if err != nil {
			return ""
		}
		return s
	}
}

// toCountryCode accepts two ASCII letters in any case and returns them upper-cased.
func toCountryCode(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return nil
		}
	}
	code := strings.ToUpper(s)
	return &code
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
