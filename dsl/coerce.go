package dsl

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// number is satisfied by encoding/json.Number and go-json's Number.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// toInt64 accepts Go integers, integral floats, JSON numbers and decimal
// strings (object keys always arrive as strings). Booleans are rejected.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case nil, bool:
		return 0, false
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint:
		return uintToInt64(uint64(n))
	case uint64:
		return uintToInt64(n)
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case string:
		return parseInt(n)
	case json.Number:
		return parseInt(n.String())
	case number:
		return parseInt(n.String())
	}
	return 0, false
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < -0x1p63 || f >= 0x1p63 {
		return 0, false
	}
	return int64(f), true
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	// 1e3 or 5.0 style numbers from JSON
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return floatToInt64(f)
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case number:
		f, err := n.Float64()
		return f, err == nil
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// toText renders strings and numbers as text, for regex/name validators
// that accept numeric-looking identifiers.
func toText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case nil, bool:
		return "", false
	case json.Number:
		return s.String(), true
	case number:
		return s.String(), true
	}
	if i, ok := toInt64(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	if f, ok := toFloat64(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}
	return "", false
}

// equalValues compares two wire values, treating numbers by value.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if _, isBool := a.(bool); isBool {
		return a == b
	}
	if _, isBool := b.(bool); isBool {
		return false
	}
	if _, isStr := a.(string); isStr {
		return a == b
	}
	if _, isStr := b.(string); isStr {
		return false
	}
	ai, aok := toInt64(a)
	bi, bok := toInt64(b)
	if aok && bok {
		return ai == bi
	}
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		return af == bf
	}
	return reflect.DeepEqual(a, b)
}

// constName renders a value for type names and messages.
func constName(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	}
	if i, ok := toInt64(v); ok {
		return strconv.FormatInt(i, 10)
	}
	return fmt.Sprint(v)
}
