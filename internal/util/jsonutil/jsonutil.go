package jsonutil

import "encoding/json"

// Decode re-marshals an already-decoded JSON value (typically a
// map[string]any picked out of a payload) into a typed struct.
func Decode(src any, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// DeepCopyMap returns a copy of m sharing no mutable state with the
// original. Values must be JSON-representable, which holds for anything
// produced by json.Unmarshal.
func DeepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out, ok := DeepCopyValue(m).(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return out
}

// DeepCopyValue recursively copies maps and slices; scalars are returned
// as-is.
func DeepCopyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = DeepCopyValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = DeepCopyValue(x[i])
		}
		return out
	default:
		return v
	}
}
