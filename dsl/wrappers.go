package dsl

import (
	"strings"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/docs"
	js "github.com/storpool/spschema/jsonschema"
)

// Optional accepts nil (or an absent field) as nil and validates anything
// else with t. The default is nil.
func Optional(t Typed) Type {
	inner := t.Type()
	return nilable("Optional", "If present must be of type "+inner.name, inner)
}

// Internal behaves like Optional and marks the attribute as debug-only in
// the documentation.
func Internal(t Typed) Type {
	inner := t.Type()
	return nilable("Internal", "An internal attribute used only for debugging. "+
		"We strongly recommend that you do not use this attribute in any kind of automation.", inner)
}

func nilable(kind, desc string, inner Type) Type {
	return Type{
		name: kind + "(" + inner.name + ")",
		validate: func(v any) (any, error) {
			if v == nil {
				return nil, nil
			}
			return inner.Validate(v)
		},
		def: func() (any, error) { return nil, nil },
		doc: docs.Optional(kind, desc, inner.Doc()),
		schema: func() *js.Schema {
			s := js.Nullable(inner.JSONSchema())
			if kind == "Internal" {
				s.Description = strings.TrimSpace(s.Description + " Internal, for debugging only.")
			}
			return s
		},
	}
}

// Const accepts only v (numbers compare by value) and defaults to it.
// Used for protocol fields such as "ok": true.
func Const(v any) Type {
	name := constName(v)
	return Type{
		name: name,
		validate: func(raw any) (any, error) {
			if !equalValues(raw, v) {
				return nil, spschema.NewError(spschema.CodeConstMismatch, map[string]any{"value": constName(raw), "expected": name})
			}
			return v, nil
		},
		def: func() (any, error) { return v, nil },
		doc: docs.Leaf(name, "The constant value "+name+"."),
		schema: func() *js.Schema {
			if v == nil {
				return &js.Schema{Type: "null"}
			}
			return &js.Schema{Const: v}
		},
	}
}

// Either tries each alternative in order and returns the first success.
// Only validation failures move on to the next alternative; any other
// error is returned as is. When every alternative fails the error carries
// no partial value. Either has no default.
func Either(alts ...Typed) Type {
	if len(alts) == 0 {
		panic(&spschema.UsageError{Op: "declare", Name: "Either", Err: spschema.ErrDeclaration})
	}
	ts := make([]Type, len(alts))
	names := make([]string, len(alts))
	nodes := make([]*docs.Node, len(alts))
	for i, a := range alts {
		ts[i] = a.Type()
		names[i] = ts[i].name
		nodes[i] = ts[i].Doc()
	}
	list := strings.Join(names, ", ")
	name := "Either(" + list + ")"
	return Type{
		name: name,
		validate: func(v any) (any, error) {
			for _, t := range ts {
				out, err := t.Validate(v)
				if err == nil {
					return out, nil
				}
				if _, ok := spschema.AsValidation(err); !ok {
					return nil, err
				}
			}
			return nil, spschema.NewError(spschema.CodeNoMatch, map[string]any{"name": name})
		},
		doc: docs.Either(name, "The value must be of one of the following types: "+list+".", nodes...),
		schema: func() *js.Schema {
			s := &js.Schema{}
			for _, t := range ts {
				s.AnyOf = append(s.AnyOf, t.JSONSchema())
			}
			return s
		},
	}
}

// EitherOr accepts the constant v or a value of t.
func EitherOr(t Typed, v any) Type { return Either(Const(v), t) }
