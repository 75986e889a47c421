package jsonschema_test

import (
	"testing"

	js "github.com/storpool/spschema/jsonschema"
)

func TestNullable(t *testing.T) {
	s := js.Nullable(&js.Schema{Type: "integer", Minimum: js.Float(1)})
	types, ok := s.Type.([]string)
	if !ok || len(types) != 2 || types[1] != "null" {
		t.Fatalf("expected [integer null], got %#v", s.Type)
	}
	if *s.Minimum != 1 {
		t.Fatalf("minimum lost")
	}

	u := js.Nullable(&js.Schema{AnyOf: []*js.Schema{{Type: "string"}, {Type: "integer"}}})
	if len(u.AnyOf) != 2 || u.AnyOf[1].Type != "null" {
		t.Fatalf("expected anyOf wrapper, got %#v", u)
	}
}
