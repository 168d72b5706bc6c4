package schema

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode populates a Go value from a validated payload, so handlers can work
// with their own struct types (using `cty` field tags) instead of raw cty
// values. A *any target receives the payload as plain Go values.
func Decode(val cty.Value, target any) error {
	if out, ok := target.(*any); ok {
		native, err := toNative(val)
		if err != nil {
			return err
		}
		*out = native
		return nil
	}
	return gocty.FromCtyValue(val, target)
}

// toNative converts a cty value into the plain Go shapes produced by
// encoding/json: map[string]any, []any, string, float64, bool, and nil.
func toNative(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	typ := val.Type()
	switch {
	case typ == cty.String:
		return val.AsString(), nil
	case typ == cty.Number:
		f, _ := val.AsBigFloat().Float64()
		return f, nil
	case typ == cty.Bool:
		return val.True(), nil
	case typ.IsObjectType() || typ.IsMapType():
		attrs := val.AsValueMap()
		out := make(map[string]any, len(attrs))
		for name, attr := range attrs {
			native, err := toNative(attr)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", name, err)
			}
			out[name] = native
		}
		return out, nil
	case typ.IsListType() || typ.IsSetType() || typ.IsTupleType():
		elems := val.AsValueSlice()
		out := make([]any, 0, len(elems))
		for i, elem := range elems {
			native, err := toNative(elem)
			if err != nil {
				return nil, fmt.Errorf("at index %d: %w", i, err)
			}
			out = append(out, native)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("schema: cannot convert %s to a native value", typ.FriendlyName())
	}
}
