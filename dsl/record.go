package dsl

import (
	"errors"
	"reflect"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/docs"
	js "github.com/storpool/spschema/jsonschema"
)

type field struct {
	name string
	typ  Type
	desc string
}

// RecordBuilder declares a record type. Start with Record, add fields and
// finish with Build or MustBuild.
type RecordBuilder struct {
	name   string
	parent *RecordType
	doc    string
	fields []field
	err    error
}

// Record starts the declaration of a record type named name.
func Record(name string) *RecordBuilder {
	b := &RecordBuilder{name: name}
	if name == "" {
		b.err = &spschema.UsageError{Op: "declare", Name: "Record", Err: spschema.ErrDeclaration}
	}
	return b
}

// Extends inherits the fields of parent. Fields declared on the builder
// with the same name replace the parent's, keeping the parent position.
func (b *RecordBuilder) Extends(parent *RecordType) *RecordBuilder {
	if parent == nil && b.err == nil {
		b.err = &spschema.UsageError{Op: "extend", Name: b.name, Err: spschema.ErrDeclaration}
	}
	b.parent = parent
	return b
}

// Doc sets the record description. Lines of the form "name: description"
// document the field of that name unless Field was given a description.
func (b *RecordBuilder) Doc(text string) *RecordBuilder {
	b.doc = text
	return b
}

// Field declares a field. Redeclaring a field of the same builder is an
// error reported by Build.
func (b *RecordBuilder) Field(name string, t Typed, desc string) *RecordBuilder {
	if b.err != nil {
		return b
	}
	if name == "" || t == nil {
		b.err = &spschema.UsageError{Op: "declare", Name: b.name, Key: name, Err: spschema.ErrDeclaration}
		return b
	}
	for _, f := range b.fields {
		if f.name == name {
			b.err = &spschema.UsageError{Op: "declare", Name: b.name, Key: name, Err: spschema.ErrDeclaration}
			return b
		}
	}
	b.fields = append(b.fields, field{name: name, typ: t.Type(), desc: desc})
	return b
}

// Build finalizes the declaration.
func (b *RecordBuilder) Build() (*RecordType, error) {
	if b.err != nil {
		return nil, b.err
	}
	desc, attrDescs := docs.SplitRecordDoc(b.doc)
	rt := &RecordType{name: b.name, desc: desc, index: map[string]int{}}
	if b.parent != nil {
		rt.parent = b.parent
		for _, f := range b.parent.fields {
			rt.index[f.name] = len(rt.fields)
			rt.fields = append(rt.fields, f)
		}
	}
	for _, f := range b.fields {
		if f.desc == "" {
			f.desc = attrDescs[f.name]
		}
		if i, ok := rt.index[f.name]; ok {
			if f.desc == "" {
				f.desc = rt.fields[i].desc
			}
			rt.fields[i] = f
			continue
		}
		rt.index[f.name] = len(rt.fields)
		rt.fields = append(rt.fields, f)
	}
	attrs := make([]docs.Attr, len(rt.fields))
	for i, f := range rt.fields {
		attrs[i] = docs.Attr{Name: f.name, Node: f.typ.Doc(), Desc: f.desc}
	}
	rt.node = docs.Record(rt.name, rt.desc, attrs)
	return rt, nil
}

// MustBuild is Build that panics on declaration errors.
func (b *RecordBuilder) MustBuild() *RecordType {
	rt, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rt
}

// RecordType validates key/value maps into *Object values.
type RecordType struct {
	name   string
	desc   string
	parent *RecordType
	fields []field
	index  map[string]int
	node   *docs.Node
}

func (rt *RecordType) Name() string { return rt.name }

// Parent returns the record this one extends, or nil.
func (rt *RecordType) Parent() *RecordType { return rt.parent }

// Fields returns the field names in declaration order.
func (rt *RecordType) Fields() []string {
	out := make([]string, len(rt.fields))
	for i, f := range rt.fields {
		out[i] = f.name
	}
	return out
}

// FieldType returns the type of the named field.
func (rt *RecordType) FieldType(name string) (Type, bool) {
	i, ok := rt.index[name]
	if !ok {
		return Type{}, false
	}
	return rt.fields[i].typ, true
}

func (rt *RecordType) Doc() *docs.Node { return rt.node }

// Type exposes the record as a Type, so records nest inside lists, maps
// and other records. Records have no default.
func (rt *RecordType) Type() Type {
	return Type{
		name: rt.name,
		validate: func(v any) (any, error) {
			if v == nil {
				return nil, typeError(rt.name, "an object", v)
			}
			o, err := rt.New(v)
			if err != nil {
				return nil, err
			}
			return o, nil
		},
		doc:    rt.node,
		schema: rt.JSONSchema,
	}
}

// JSONSchema exports the record as an object schema. Fields without a
// default are required.
func (rt *RecordType) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "object", Title: rt.name, Description: rt.desc, Properties: map[string]*js.Schema{}}
	for _, f := range rt.fields {
		fs := f.typ.JSONSchema()
		if f.desc != "" && fs.Description == "" {
			cp := *fs
			cp.Description = f.desc
			fs = &cp
		}
		s.Properties[f.name] = fs
		if !f.typ.HasDefault() {
			s.Required = append(s.Required, f.name)
		}
	}
	return s
}

// New builds an instance from raw. See NewWith. A nil raw builds from
// defaults alone.
func (rt *RecordType) New(raw any) (*Object, error) { return rt.NewWith(raw, nil) }

// NewWith builds an instance from raw with overrides merged on top.
//
// Every field is attempted: a present key is validated with the field
// type, a missing one takes the type's default. When any field fails the
// error is a *spschema.ValidationError whose Partial is the *Object with
// every field that did validate. Passing an *Object of this record
// returns it unchanged; combining that with overrides is a usage error.
func (rt *RecordType) NewWith(raw any, overrides map[string]any) (*Object, error) {
	if o, ok := raw.(*Object); ok && o.rt == rt {
		if len(overrides) > 0 {
			return nil, &spschema.UsageError{Op: "new", Name: rt.name, Err: spschema.ErrRewrapOverrides}
		}
		return o, nil
	}
	if raw == nil {
		raw = map[string]any{}
	}
	in, ok := recordInput(raw)
	if !ok {
		return nil, typeError(rt.name, "an object", raw)
	}
	for k, v := range overrides {
		in[k] = v
	}

	o := &Object{rt: rt, values: make(map[string]any, len(rt.fields))}
	var c spschema.Catch
	for _, f := range rt.fields {
		v, ok := c.Step(f.name, func() (any, error) {
			if rv, present := in[f.name]; present {
				return f.typ.Validate(rv)
			}
			d, err := f.typ.Default()
			if ve, isVE := spschema.AsValidation(err); isVE && ve.Code == spschema.CodeNoDefault {
				return nil, required(f.name)
			}
			return d, err
		})
		if ok {
			o.values[f.name] = v
		}
	}
	if err := c.Finalize(rt.name, o); err != nil {
		return nil, err
	}
	return o, nil
}

// MustNew is New that panics on failure. Intended for literals in tests
// and declarations.
func (rt *RecordType) MustNew(raw any) *Object {
	o, err := rt.New(raw)
	if err != nil {
		panic(err)
	}
	return o
}

// recordInput copies raw into a fresh map keyed by field name.
func recordInput(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	case *Object:
		return m.ToMap(), true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[keyText(k)] = v
		}
		return out, true
	}
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[it.Key().String()] = it.Value().Interface()
	}
	return out, true
}

// Object is an instance of a RecordType. Fields that failed validation
// read as nil. Objects are not safe for concurrent mutation.
type Object struct {
	rt     *RecordType
	values map[string]any
}

// Record returns the type the object was built from.
func (o *Object) Record() *RecordType { return o.rt }

// Is reports whether o was built from rt or from a record extending it.
func (o *Object) Is(rt *RecordType) bool {
	for r := o.rt; r != nil; r = r.parent {
		if r == rt {
			return true
		}
	}
	return false
}

// Get returns the value of a declared field.
func (o *Object) Get(name string) (any, error) {
	if _, ok := o.rt.index[name]; !ok {
		return nil, &spschema.UsageError{Op: "get", Name: o.rt.name, Key: name, Err: spschema.ErrUnknownField}
	}
	return o.values[name], nil
}

// Value is Get for callers that know name is declared. Unknown names read
// as nil.
func (o *Object) Value(name string) any { return o.values[name] }

// Has reports whether the field holds a validated value.
func (o *Object) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Set validates v with the field type and stores it. On failure the
// field keeps its previous value.
func (o *Object) Set(name string, v any) error {
	i, ok := o.rt.index[name]
	if !ok {
		return &spschema.UsageError{Op: "set", Name: o.rt.name, Key: name, Err: spschema.ErrUnknownField}
	}
	tv, err := o.rt.fields[i].typ.Validate(v)
	if err != nil {
		var ve *spschema.ValidationError
		if errors.As(err, &ve) {
			out := *ve
			out.Message = o.rt.name + "." + name + ": " + ve.Message
			return &out
		}
		return err
	}
	o.values[name] = tv
	return nil
}

// Fields returns the declared field names in order.
func (o *Object) Fields() []string { return o.rt.Fields() }

// ToMap returns every declared field, nil for unset ones.
func (o *Object) ToMap() map[string]any {
	out := make(map[string]any, len(o.rt.fields))
	for _, f := range o.rt.fields {
		out[f.name] = o.values[f.name]
	}
	return out
}
