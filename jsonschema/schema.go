package jsonschema

// Schema is a minimal JSON Schema representation used for export.
// Only the keywords the StorPool declarations map onto are modelled.
type Schema struct {
	// Core
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        any    `json:"type,omitempty" yaml:"type,omitempty"` // string or []string
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any  `json:"enum,omitempty" yaml:"enum,omitempty"`
	Const       any    `json:"const,omitempty" yaml:"const,omitempty"`

	// Number
	Minimum    *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum    *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	MultipleOf *float64 `json:"multipleOf,omitempty" yaml:"multipleOf,omitempty"`

	// String
	Pattern   string  `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Not       *Schema `json:"not,omitempty" yaml:"not,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	PropertyNames        *Schema            `json:"propertyNames,omitempty" yaml:"propertyNames,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Array
	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems    *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`

	// Union
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// Definitions and references
	Ref  string             `json:"$ref,omitempty" yaml:"$ref,omitempty"`
	Defs map[string]*Schema `json:"$defs,omitempty" yaml:"$defs,omitempty"`
}

// Float returns a pointer to f, for Minimum/Maximum.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to n, for MaxLength/MinItems/MaxItems.
func Int(n int) *int { return &n }

// Nullable returns a copy of s that also admits null.
func Nullable(s *Schema) *Schema {
	if s == nil {
		return &Schema{}
	}
	out := *s
	switch t := s.Type.(type) {
	case string:
		if t != "" {
			out.Type = []string{t, "null"}
			return &out
		}
	case []string:
		out.Type = append(append([]string{}, t...), "null")
		return &out
	}
	return &Schema{AnyOf: []*Schema{s, {Type: "null"}}, Description: s.Description}
}
