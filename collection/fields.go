// Package collection implements ordered collections of structured entries and
// the pure operations used to edit them. Every operation returns a new
// top-level value, untouched entries are shared by reference and are never
// modified in place.
package collection

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Fields is a schemaless set of named values. Values are primitives (string,
// bool, numbers), nested Fields or nested Collection.
type Fields map[string]any

// Clone returns shallow copy of the fields.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f)+1)
	maps.Copy(out, f)
	return out
}

// With returns copy of the fields with single value replaced.
func (f Fields) With(name string, value any) Fields {
	out := f.Clone()
	out[name] = value
	return out
}

// Merge returns copy of the fields with all updates applied on top.
func (f Fields) Merge(updates Fields) Fields {
	out := f.Clone()
	maps.Copy(out, updates)
	return out
}

// Has reports whether value with this name is present.
func (f Fields) Has(name string) bool {
	_, ok := f[name]
	return ok
}

// String returns string value of the field or def when absent. Numbers and
// booleans are formatted.
func (f Fields) String(name, def string) string {
	switch v := f[name].(type) {
	case nil:
		return def
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return def
	}
}

// Bool returns boolean value of the field. Strings "true"/"false" are
// accepted since attribute values round trip through text based hosts.
func (f Fields) Bool(name string) bool {
	switch v := f[name].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

// Int returns integer value of the field or def when absent or not a number.
func (f Fields) Int(name string, def int) int {
	switch v := f[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// Map returns nested object value. Absent or mistyped values produce empty
// fields, never nil.
func (f Fields) Map(name string) Fields {
	switch v := f[name].(type) {
	case Fields:
		return v
	case map[string]any:
		return Fields(v)
	default:
		return Fields{}
	}
}

// Collection is List for callers about to replace the value: absent value is
// empty collection, anything else but collection is an error.
func (f Fields) Collection(name string) (Collection, error) {
	switch v := f[name].(type) {
	case nil:
		return Collection{}, nil
	case Collection:
		return v, nil
	default:
		return nil, fmt.Errorf("field %q holds %T: %w", name, v, ErrNotCollection)
	}
}

// List returns nested sub-collection. Absent or mistyped values produce
// empty collection.
func (f Fields) List(name string) Collection {
	if v, ok := f[name].(Collection); ok {
		return v
	}
	return Collection{}
}

// deepCopy copies template values so entries created from the same template
// never share nested state. Nested collections get fresh ids.
func deepCopy(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = deepValue(v)
	}
	return out
}

func deepValue(v any) any {
	switch t := v.(type) {
	case Fields:
		return deepCopy(t)
	case map[string]any:
		return deepCopy(Fields(t))
	case Collection:
		out := make(Collection, 0, len(t))
		for _, e := range t {
			out = append(out, New(e.Fields))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = deepValue(t[i])
		}
		return out
	default:
		return v
	}
}
