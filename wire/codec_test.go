package wire_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/dsl"
	"github.com/storpool/spschema/wire"
)

var update = dsl.Record("PlacementGroupUpdate").
	Field("rename", dsl.Optional(dsl.String()), "").
	Field("addDisks", dsl.SetOf(dsl.Int()), "").
	MustBuild()

func TestEncode_DropsNilAndListsSets(t *testing.T) {
	obj := update.MustNew(map[string]any{"addDisks": []any{3, 1, 2}})
	b, err := wire.Encode(obj)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(b) != `{"addDisks":[1,2,3]}` {
		t.Fatalf("unexpected body %s", b)
	}

	b, _ = wire.Encode(map[string]any{"a": []any{1, nil, 2}, "b": nil})
	if string(b) != `{"a":[1,2]}` {
		t.Fatalf("nil values must be dropped, got %s", b)
	}
}

func TestDecode_UsesNumbers(t *testing.T) {
	v, err := wire.Decode([]byte(`{"size": 1099511627776000}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	n, ok := v.(map[string]any)["size"].(json.Number)
	if !ok || n.String() != "1099511627776000" {
		t.Fatalf("expected json.Number, got %#v", v)
	}
	if _, err := wire.Decode([]byte(`{`)); err == nil {
		t.Fatalf("expected a decode error")
	}
}

func TestDecodeResponse(t *testing.T) {
	env, eb, err := wire.DecodeResponse(200, []byte(`{"generation": 42, "data": {"ok": true}}`))
	if err != nil || eb != nil {
		t.Fatalf("unexpected failure %v %v", eb, err)
	}
	if env.Generation != 42 || !cmp.Equal(env.Data, map[string]any{"ok": true}) {
		t.Fatalf("unexpected envelope %+v", env)
	}

	_, eb, err = wire.DecodeResponse(200, []byte(`{"error": {"name": "busy", "descr": "try later", "transient": true, "hint": 1}}`))
	if err != nil || eb == nil {
		t.Fatalf("error member must be reported, got %v %v", eb, err)
	}
	if eb.Name != "busy" || eb.Descr != "try later" || !eb.Transient || eb.Extra["hint"] == nil {
		t.Fatalf("unexpected error body %+v", eb)
	}

	_, eb, _ = wire.DecodeResponse(404, []byte(`{"generation": 1}`))
	if eb == nil || eb.Name != "<Missing error name>" || eb.Transient {
		t.Fatalf("non-200 status is an error, got %+v", eb)
	}

	_, eb, err = wire.DecodeResponse(502, []byte(`<html>bad gateway</html>`))
	if err == nil || eb == nil || eb.Name != "invalidResponse" {
		t.Fatalf("unparsable error responses still yield a body, got %+v %v", eb, err)
	}
}

func TestErrorBody_MarshalKeepsExtra(t *testing.T) {
	eb := &wire.ErrorBody{Name: "objectDoesNotExist", Descr: "no such volume", Extra: map[string]any{"object": "vol"}}
	b, err := json.Marshal(eb)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	_ = json.Unmarshal(b, &back)
	want := map[string]any{"name": "objectDoesNotExist", "descr": "no such volume", "transient": false, "object": "vol"}
	if diff := cmp.Diff(want, back); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestDuplicateKeys(t *testing.T) {
	body := []byte(`{"data": {"disks": [{"id": 1, "id": 2}, {"x": {"a": 1, "a": 2}}], "n": 1, "n": 2}}`)
	iss := wire.DuplicateKeys(body, 0)
	var paths []string
	for _, is := range iss {
		if is.Code != spschema.CodeDuplicateKey {
			t.Fatalf("unexpected issue %+v", is)
		}
		paths = append(paths, is.Path)
	}
	want := []string{"/data/disks/0/id", "/data/disks/1/x/a", "/data/n"}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got := wire.DuplicateKeys(body, 1); len(got) != 1 {
		t.Fatalf("maxIssues must cap the result, got %v", got)
	}
	if got := wire.DuplicateKeys([]byte(`{"a": 1}`), 0); len(got) != 0 {
		t.Fatalf("no duplicates expected, got %v", got)
	}
	if got := wire.DuplicateKeys([]byte(`{"a": `), 0); len(got) != 1 || got[0].Code != spschema.CodeParseError {
		t.Fatalf("expected parse_error, got %v", got)
	}
}
