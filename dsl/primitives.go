package dsl

import (
	"math"

	spschema "github.com/storpool/spschema"
	js "github.com/storpool/spschema/jsonschema"
)

func typeError(name, expected string, v any) error {
	return spschema.NewError(spschema.CodeInvalidType, map[string]any{"name": name, "expected": expected, "value": constName(v)})
}

// Bool accepts only JSON booleans.
func Bool() Type {
	return leaf("bool", "true or false.", func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, typeError("bool", "true or false", v)
		}
		return b, nil
	}, func() *js.Schema { return &js.Schema{Type: "boolean"} })
}

// Int accepts integers in the range of a Go int and returns int.
func Int() Type {
	return leaf("int", "An integer value.", func(v any) (any, error) {
		i, ok := toInt64(v)
		if !ok || i < math.MinInt || i > math.MaxInt {
			return nil, typeError("int", "an integer", v)
		}
		return int(i), nil
	}, func() *js.Schema { return &js.Schema{Type: "integer"} })
}

// Long accepts 64-bit integers and returns int64. Used for generations,
// sizes and timestamps.
func Long() Type {
	return leaf("long", "A long integer value.", func(v any) (any, error) {
		i, ok := toInt64(v)
		if !ok {
			return nil, typeError("long", "an integer", v)
		}
		return i, nil
	}, func() *js.Schema { return &js.Schema{Type: "integer", Format: "int64"} })
}

// Float accepts JSON numbers and numeric strings and returns float64.
func Float() Type {
	return leaf("float", "A floating point number.", func(v any) (any, error) {
		f, ok := toFloat64(v)
		if !ok {
			return nil, typeError("float", "a number", v)
		}
		return f, nil
	}, func() *js.Schema { return &js.Schema{Type: "number"} })
}

// String accepts only JSON strings.
func String() Type {
	return leaf("string", "A string value.", func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, typeError("string", "a string", v)
		}
		return s, nil
	}, func() *js.Schema { return &js.Schema{Type: "string"} })
}

// Any accepts every value unchanged.
func Any() Type {
	return leaf("any", "Any JSON value.", func(v any) (any, error) { return v, nil }, func() *js.Schema { return &js.Schema{} })
}
