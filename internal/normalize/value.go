package normalize

import (
	"reposit/internal/core"
)

// looksLikeFormValue reports whether a raw payload object carries the
// recognized form-value shape: a "value" key plus at least one of the
// companion keys a server-side metadata value always serializes with.
func looksLikeFormValue(m map[string]any) bool {
	if _, ok := m["value"]; !ok {
		return false
	}
	for _, key := range []string{"language", "authority", "confidence", "display", "place"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// NormalizeEntry converts one section array element into its normalized
// form. Elements matching the form-value shape become MetadataValue, with
// the element index as the place when the source carries none; values that
// are already normalized come back unchanged, so the conversion is
// idempotent. keep reports whether the element survives: empty results and
// nils are dropped, anything unrecognized passes through untouched.
func NormalizeEntry(v any, index int) (out any, keep bool) {
	switch x := v.(type) {
	case nil:
		return nil, false
	case core.MetadataValue:
		return x, true
	case *core.MetadataValue:
		if x == nil {
			return nil, false
		}
		return *x, true
	case map[string]any:
		if !looksLikeFormValue(x) {
			return v, true
		}
		mv := metadataValueFromMap(x, index)
		if mv.Value == "" {
			return nil, false
		}
		return mv, true
	default:
		return v, true
	}
}

func metadataValueFromMap(m map[string]any, fallbackPlace int) core.MetadataValue {
	mv := core.MetadataValue{
		Value:      asString(m["value"]),
		Language:   asString(m["language"]),
		Authority:  asString(m["authority"]),
		Display:    asString(m["display"]),
		Place:      asInt(m["place"], fallbackPlace),
		Confidence: asInt(m["confidence"], core.ConfidenceNotSet),
	}
	if mv.Display == "" {
		mv.Display = mv.Value
	}
	if other, ok := m["otherInformation"].(map[string]any); ok && len(other) > 0 {
		mv.OtherInformation = make(map[string]string, len(other))
		for k, v := range other {
			mv.OtherInformation[k] = asString(v)
		}
	}
	return mv
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any, fallback int) int {
	switch x := v.(type) {
	case float64:
		return int(x)
	case int:
		return x
	case int64:
		return int(x)
	}
	return fallback
}
