package dsl

import (
	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/docs"
	js "github.com/storpool/spschema/jsonschema"
)

// Type describes a named, validated wire value. It bundles a validation
// function, an optional default provider, a documentation node and a JSON
// Schema export. Types are immutable once built; combinators return new
// Types built from their components.
type Type struct {
	name     string
	validate func(any) (any, error)
	def      func() (any, error)
	doc      *docs.Node
	schema   func() *js.Schema
}

// Typed is implemented by everything usable where a Type is expected:
// Type itself and *RecordType.
type Typed interface {
	Type() Type
}

// Type returns t, so Type satisfies Typed.
func (t Type) Type() Type { return t }

// Name is the display name used in messages and documentation.
func (t Type) Name() string { return t.name }

// Validate coerces and checks raw. Failures are *spschema.ValidationError,
// possibly carrying a partial value.
func (t Type) Validate(raw any) (any, error) {
	if t.validate == nil {
		return raw, nil
	}
	return t.validate(raw)
}

// Default returns the value used when a record field is absent.
func (t Type) Default() (any, error) {
	if t.def == nil {
		return nil, spschema.NewError(spschema.CodeNoDefault, map[string]any{"name": t.name})
	}
	return t.def()
}

// HasDefault reports whether Default can succeed.
func (t Type) HasDefault() bool { return t.def != nil }

func (t Type) Doc() *docs.Node {
	if t.doc == nil {
		return docs.Leaf(t.name, "")
	}
	return t.doc
}

// JSONSchema exports the type as a JSON Schema fragment.
func (t Type) JSONSchema() *js.Schema {
	if t.schema == nil {
		return &js.Schema{}
	}
	return t.schema()
}

// WithDefault returns t with a fixed default value. The default is
// exported in JSON Schema and shown in the type name.
func (t Type) WithDefault(v any) Type {
	out := t
	out.name = t.name + ", default=" + constName(v)
	out.def = func() (any, error) { return v, nil }
	out.doc = docs.Leaf(out.name, "A value of type "+t.name+". Default value = "+constName(v)+".")
	prev := t.schema
	out.schema = func() *js.Schema {
		s := &js.Schema{}
		if prev != nil {
			cp := *prev()
			s = &cp
		}
		s.Default = v
		return s
	}
	return out
}

// WithDefault is the functional form of Type.WithDefault.
func WithDefault(t Typed, v any) Type { return t.Type().WithDefault(v) }

// Func declares a leaf type from a validation function, with no default.
// It is the building block for the named validators.
func Func(name, desc string, fn func(any) (any, error)) Type {
	return Type{
		name:     name,
		validate: fn,
		doc:      docs.Leaf(name, desc),
		schema:   func() *js.Schema { return &js.Schema{Title: name, Description: desc} },
	}
}

func leaf(name, desc string, fn func(any) (any, error), schema func() *js.Schema) Type {
	return Type{name: name, validate: fn, doc: docs.Leaf(name, desc), schema: schema}
}
