package analytics

import (
	"strconv"
	"strings"
)

// envelopeField is where HTTP client responses carry the payload.
const envelopeField = "data"

// Resolve walks each dotted path against doc and returns the first value found.
//
// When doc wraps the payload in a "data" object, resolution starts inside it.
// A value counts as found when its final key exists, even if it holds nil, 0,
// "" or an empty slice. Resolve returns (nil, false) when every path fails.
func Resolve(doc any, paths ...string) (any, bool) {
	root := unwrapEnvelope(doc)
	for _, path := range paths {
		if value, ok := walk(root, path); ok {
			return value, true
		}
	}
	return nil, false
}

func unwrapEnvelope(doc any) any {
	m, ok := asObject(doc)
	if !ok {
		return doc
	}
	if inner, ok := asObject(m[envelopeField]); ok {
		return inner
	}
	return doc
}

// walk follows path one component at a time. Intermediate nil values and
// scalars end the walk.
func walk(root any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	current := root
	for _, key := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[key]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// field returns the first alias holding a non-nil value, so an explicit JSON
// null falls through to the next alias. Aliases may be dotted paths.
func field(entry map[string]any, aliases ...string) any {
	for _, alias := range aliases {
		if value, ok := walk(entry, alias); ok && value != nil {
			return value
		}
	}
	return nil
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}
