package dsl

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/docs"
	js "github.com/storpool/spschema/jsonschema"
)

// ListOf validates every element with elem. One bad element does not stop
// the others: the failure carries the list of elements that did validate,
// in order. The default is an empty list.
func ListOf(elem Typed) Type {
	et := elem.Type()
	name := "[" + et.name + "]"
	return Type{
		name: name,
		validate: func(v any) (any, error) {
			items, ok := sliceOf(v)
			if !ok {
				return nil, typeError(name, "a list", v)
			}
			out := make([]any, 0, len(items))
			var c spschema.Catch
			for i, it := range items {
				if tv, ok := c.Step(strconv.Itoa(i), func() (any, error) { return et.Validate(it) }); ok {
					out = append(out, tv)
				}
			}
			if err := c.Finalize(name, out); err != nil {
				return nil, err
			}
			return out, nil
		},
		def: func() (any, error) { return []any{}, nil },
		doc: docs.List(name, "A list of "+et.name, et.Doc()),
		schema: func() *js.Schema {
			return &js.Schema{Type: "array", Items: et.JSONSchema()}
		},
	}
}

// Set holds the validated elements of a SetOf type. It encodes to JSON as
// a list.
type Set map[any]struct{}

// NewSet builds a Set from vs.
func NewSet(vs ...any) Set {
	s := make(Set, len(vs))
	for _, v := range vs {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Add(v any)      { s[v] = struct{}{} }
func (s Set) Has(v any) bool { _, ok := s[v]; return ok }
func (s Set) Len() int       { return len(s) }
func (s Set) Remove(v any)   { delete(s, v) }

// Equal reports whether s and o hold the same elements.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// Values returns the elements in a stable order: numbers ascending, then
// everything else by its text form.
func (s Set) Values() []any {
	out := make([]any, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sortValues(out)
	return out
}

func (s Set) MarshalJSON() ([]byte, error) { return gojson.Marshal(Plain(s.Values(), false)) }

// SetOf validates every element with elem, like ListOf, collecting the
// results into a Set. Elements must validate to comparable values.
func SetOf(elem Typed) Type {
	et := elem.Type()
	name := "{" + et.name + "}"
	return Type{
		name: name,
		validate: func(v any) (any, error) {
			items, ok := sliceOf(v)
			if !ok {
				return nil, typeError(name, "a list", v)
			}
			out := make(Set, len(items))
			var c spschema.Catch
			for i, it := range items {
				tv, ok := c.Step(strconv.Itoa(i), func() (any, error) {
					tv, err := et.Validate(it)
					if err != nil {
						return nil, err
					}
					if tv != nil && !reflect.TypeOf(tv).Comparable() {
						return nil, typeError(et.name, "a set element", it)
					}
					return tv, nil
				})
				if ok && (tv == nil || reflect.TypeOf(tv).Comparable()) {
					out.Add(tv)
				}
			}
			if err := c.Finalize(name, out); err != nil {
				return nil, err
			}
			return out, nil
		},
		def: func() (any, error) { return Set{}, nil },
		doc: docs.List(name, "A set of "+et.name, et.Doc()),
		schema: func() *js.Schema {
			return &js.Schema{Type: "array", Items: et.JSONSchema(), UniqueItems: true}
		},
	}
}

// MapOf validates every entry: first the key, then the value. A bad key
// drops the entry; a bad value keeps the key with a nil value (or the
// value's partial result). Entries are visited in key order so issues
// come out deterministically. The default is an empty map.
func MapOf(key, val Typed) Type {
	kt, vt := key.Type(), val.Type()
	name := "{" + kt.name + ": " + vt.name + "}"
	return Type{
		name: name,
		validate: func(v any) (any, error) {
			entries, ok := entriesOf(v)
			if !ok {
				return nil, typeError(name, "an object", v)
			}
			out := make(map[any]any, len(entries))
			var c spschema.Catch
			for _, e := range entries {
				tk, ok := c.Step(e.key, func() (any, error) { return kt.Validate(e.raw) })
				if !ok {
					continue
				}
				if tk != nil && !reflect.TypeOf(tk).Comparable() {
					continue
				}
				tv, ok := c.Step(e.key, func() (any, error) { return vt.Validate(e.val) })
				if !ok {
					tv = nil
				}
				out[tk] = tv
			}
			if err := c.Finalize(name, out); err != nil {
				return nil, err
			}
			return out, nil
		},
		def: func() (any, error) { return map[any]any{}, nil },
		doc: docs.Map(name, "A dict from "+kt.name+" to "+vt.name, kt.Doc(), vt.Doc()),
		schema: func() *js.Schema {
			s := &js.Schema{Type: "object", AdditionalProperties: vt.JSONSchema()}
			ks := kt.JSONSchema()
			switch ks.Type {
			case "string":
				s.PropertyNames = &js.Schema{Pattern: ks.Pattern, MaxLength: ks.MaxLength, Enum: ks.Enum}
			case "integer":
				s.PropertyNames = &js.Schema{Pattern: "^-?[0-9]+$"}
			}
			return s
		},
	}
}

type entry struct {
	key string // pointer token
	raw any    // raw key
	val any
}

func entriesOf(v any) ([]entry, bool) {
	var out []entry
	switch m := v.(type) {
	case map[string]any:
		out = make([]entry, 0, len(m))
		for k, val := range m {
			out = append(out, entry{key: k, raw: k, val: val})
		}
	case map[any]any:
		out = make([]entry, 0, len(m))
		for k, val := range m {
			out = append(out, entry{key: keyText(k), raw: k, val: val})
		}
	default:
		rv := reflect.ValueOf(v)
		if !rv.IsValid() || rv.Kind() != reflect.Map {
			return nil, false
		}
		out = make([]entry, 0, rv.Len())
		it := rv.MapRange()
		for it.Next() {
			k := it.Key().Interface()
			out = append(out, entry{key: keyText(k), raw: k, val: it.Value().Interface()})
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessText(out[i].key, out[j].key) })
	return out, true
}

func sliceOf(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case Set:
		return s.Values(), true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func keyText(k any) string {
	if s, ok := toText(k); ok {
		return s
	}
	return fmt.Sprint(k)
}

// lessText orders numeric strings numerically and before other strings.
func lessText(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	}
	return a < b
}

func sortValues(vs []any) {
	sort.SliceStable(vs, func(i, j int) bool { return lessText(keyText(vs[i]), keyText(vs[j])) })
}
