package model

import (
	"encoding/json"
	"reflect"

	"github.com/avidian/mvc/pkg/collection"
)

// Arrayable is implemented by values that can present themselves as a map.
// Models and request input implement it; ToMap serializes nested Arrayable
// values through it.
type Arrayable interface {
	ToMap() map[string]any
}

// ToMap returns the visible attributes with nested values serialized.
// Hidden columns are omitted.
func (m *Model) ToMap() map[string]any {
	if m == nil {
		return nil
	}
	visible := collection.Except(m.attrs, m.def.hidden...)
	out := make(map[string]any, len(visible))
	for k, v := range visible {
		out[k] = Serialize(v)
	}
	return out
}

// MarshalJSON encodes the visible attributes as a JSON object.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// Serialize converts v into plain maps and slices: Arrayable values are
// expanded with ToMap, string-keyed maps and slices are walked recursively.
// Everything else, []byte included, is returned untouched.
func Serialize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Arrayable:
		if isNilPointer(x) {
			return nil
		}
		return x.ToMap()
	case Attributes:
		return serializeMap(x)
	case map[string]any:
		return serializeMap(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Serialize(e)
		}
		return out
	case []byte:
		return x
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = Serialize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Serialize(iter.Value().Interface())
		}
		return out
	default:
		return v
	}
}

func serializeMap[M ~map[string]any](m M) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Serialize(v)
	}
	return out
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
