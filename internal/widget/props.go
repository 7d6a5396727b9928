package widget

// Coercion helpers for property-bag and layout-file values. Layout files
// pass through encoding/json, so numbers arrive as float64 and colors as
// []any; freshly constructed widgets hold native ints and RGB values. These
// helpers accept both shapes so round-tripped state reads the same either
// way.

func asInt(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	}
	return def
}

func asFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return def
}

func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// asColor coerces native RGB values, decoded JSON arrays and int slices to
// an RGB triple. Short or malformed values fall back to def.
func asColor(v any, def RGB) RGB {
	switch c := v.(type) {
	case RGB:
		return c
	case [3]int:
		return RGB(c)
	case []int:
		if len(c) >= 3 {
			return RGB{c[0], c[1], c[2]}
		}
	case []any:
		if len(c) >= 3 {
			return RGB{asInt(c[0], 0), asInt(c[1], 0), asInt(c[2], 0)}
		}
	}
	return def
}

// asColorPtr is asColor for nullable colors: nil stays nil (transparent).
func asColorPtr(v any) *RGB {
	if v == nil {
		return nil
	}
	if p, ok := v.(*RGB); ok {
		return p
	}
	c := asColor(v, RGB{-1, -1, -1})
	if c == (RGB{-1, -1, -1}) {
		return nil
	}
	return &c
}

// isColorLike reports whether v can be interpreted as an RGB triple at all,
// regardless of range. Used by validators that must distinguish "not a
// color" from "color out of range".
func isColorLike(v any) bool {
	switch c := v.(type) {
	case RGB, [3]int:
		return true
	case []int:
		return len(c) == 3
	case []any:
		return len(c) == 3
	}
	return false
}

func asStrings(v any, def []string) []string {
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return def
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
