package dsl

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// Plain converts a validated value into JSON-ready data: *Object becomes a
// map of its fields, Set becomes a sorted list and maps with non-string
// keys get their keys rendered as text. With dropNil, nil values are left
// out at every level: map entries, record fields and list elements.
func Plain(v any, dropNil bool) any {
	switch x := v.(type) {
	case *Object:
		if x == nil {
			return nil
		}
		out := make(map[string]any, len(x.rt.fields))
		for _, f := range x.rt.fields {
			fv := x.values[f.name]
			if fv == nil && dropNil {
				continue
			}
			out[f.name] = Plain(fv, dropNil)
		}
		return out
	case Set:
		return plainList(x.Values(), dropNil)
	case []any:
		return plainList(x, dropNil)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if e == nil && dropNil {
				continue
			}
			out[k] = Plain(e, dropNil)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if e == nil && dropNil {
				continue
			}
			out[keyText(k)] = Plain(e, dropNil)
		}
		return out
	}
	return v
}

func plainList(xs []any, dropNil bool) []any {
	out := make([]any, 0, len(xs))
	for _, e := range xs {
		if e == nil && dropNil {
			continue
		}
		out = append(out, Plain(e, dropNil))
	}
	return out
}

// MarshalJSON encodes the fields in declaration order. Unset fields are
// encoded as null.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.rt.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := gojson.Marshal(f.name)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := gojson.Marshal(Plain(o.values[f.name], false))
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the object as JSON, for logs and error messages.
func (o *Object) String() string {
	b, err := o.MarshalJSON()
	if err != nil {
		return o.rt.name + "{?}"
	}
	return o.rt.name + string(b)
}
