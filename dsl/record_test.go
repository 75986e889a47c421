package dsl_test

import (
	"bytes"
	"errors"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	spschema "github.com/storpool/spschema"
	g "github.com/storpool/spschema/dsl"
)

var testPeer = g.Record("Peer").
	Doc(`
		A network peer.

		id: the peer id
		up: whether the peer is reachable
	`).
	Field("id", g.IntRange("PeerId", 0, 0xffff), "").
	Field("name", g.String(), "human readable name").
	Field("up", g.WithDefault(g.Bool(), false), "").
	Field("nets", g.ListOf(g.Int()), "").
	MustBuild()

func TestRecord_EveryFieldAttempted(t *testing.T) {
	_, err := testPeer.New(map[string]any{"id": 70000, "name": "a", "up": true, "nets": []any{1}})
	ve, ok := spschema.AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	obj, ok := ve.Partial.(*g.Object)
	if !ok {
		t.Fatalf("partial must be the object, got %T", ve.Partial)
	}
	want := map[string]any{"id": nil, "name": "a", "up": true, "nets": []any{1}}
	if diff := cmp.Diff(want, obj.ToMap()); diff != "" {
		t.Fatalf("partial mismatch (-want +got):\n%s", diff)
	}
	if obj.Has("id") {
		t.Fatalf("failed field must be unset")
	}
	if ve.Message != "Peer: Invalid PeerId 70000. Must be at most 65535" {
		t.Fatalf("unexpected message %q", ve.Message)
	}
	if iss, _ := spschema.AsIssues(err); len(iss) != 1 || iss[0].Path != "/id" {
		t.Fatalf("unexpected issues %v", iss)
	}
}

func TestRecord_MissingFieldsUseDefaults(t *testing.T) {
	_, err := testPeer.New(map[string]any{"id": 1})
	p, _ := spschema.PartialOf(err)
	obj := p.(*g.Object)
	if obj.Value("up") != false {
		t.Fatalf("expected default false, got %v", obj.Value("up"))
	}
	if v := obj.Value("nets"); v == nil || len(v.([]any)) != 0 {
		t.Fatalf("expected empty default list, got %v", v)
	}
	ve, _ := spschema.AsValidation(err)
	if ve.Code != spschema.CodeRequired || ve.Message != "Peer: No name specified" {
		t.Fatalf("missing field without default must be required, got %s %q", ve.Code, ve.Message)
	}
}

func TestRecord_RewrapIsIdentity(t *testing.T) {
	obj := testPeer.MustNew(map[string]any{"id": 1, "name": "a"})
	again, err := testPeer.New(obj)
	if err != nil || again != obj {
		t.Fatalf("re-wrap must return the same object, got %p %v", again, err)
	}
	_, err = testPeer.NewWith(obj, map[string]any{"up": true})
	if !errors.Is(err, spschema.ErrRewrapOverrides) {
		t.Fatalf("expected ErrRewrapOverrides, got %v", err)
	}
}

func TestRecord_Overrides(t *testing.T) {
	obj, err := testPeer.NewWith(map[string]any{"id": 1, "name": "a"}, map[string]any{"name": "b"})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if obj.Value("name") != "b" {
		t.Fatalf("overrides win, got %v", obj.Value("name"))
	}
	if _, err := testPeer.NewWith(nil, map[string]any{"id": 2, "name": "c"}); err != nil {
		t.Fatalf("overrides alone are enough: %v", err)
	}
}

func TestRecord_NilBuildsFromDefaults(t *testing.T) {
	opts := g.Record("Opts").
		Field("force", g.WithDefault(g.Bool(), false), "").
		Field("tags", g.Optional(g.MapOf(g.String(), g.String())), "").
		MustBuild()
	obj, err := opts.New(nil)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"force": false, "tags": nil}, obj.ToMap()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	_, err = testPeer.New(nil)
	iss, ok := spschema.AsIssues(err)
	if !ok || len(iss) != 2 || iss[0].Code != spschema.CodeRequired {
		t.Fatalf("expected missing id and name, got %v", err)
	}

	// an explicit null in a document is still not an object
	if _, err := opts.Type().Validate(nil); codeOf(t, err) != spschema.CodeInvalidType {
		t.Fatalf("null record value must be rejected")
	}
}

func TestRecord_NonMapInput(t *testing.T) {
	_, err := testPeer.New("pfth")
	ve, ok := spschema.AsValidation(err)
	if !ok || ve.Code != spschema.CodeInvalidType || ve.Partial != nil {
		t.Fatalf("expected invalid_type without partial, got %v", err)
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	obj := testPeer.MustNew(map[string]any{"id": 5, "name": "x", "up": true, "nets": []any{0, 1}})
	b, err := gojson.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"id":5,"name":"x","up":true,"nets":[0,1]}` {
		t.Fatalf("fields must be encoded in order, got %s", b)
	}
	var raw map[string]any
	dec := gojson.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	back, err := testPeer.New(raw)
	if err != nil {
		t.Fatalf("decode through record: %v", err)
	}
	if diff := cmp.Diff(obj.ToMap(), back.ToMap()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestObject_GetSet(t *testing.T) {
	obj := testPeer.MustNew(map[string]any{"id": 1, "name": "a"})
	if _, err := obj.Get("nope"); !errors.Is(err, spschema.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := obj.Set("nope", 1); !errors.Is(err, spschema.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := obj.Set("id", -1); err == nil {
		t.Fatalf("set must validate")
	}
	if v, _ := obj.Get("id"); v != 1 {
		t.Fatalf("failed set keeps the old value, got %v", v)
	}
	if err := obj.Set("id", "7"); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if v, _ := obj.Get("id"); v != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestRecord_ExtendsKeepsParentOrder(t *testing.T) {
	child := g.Record("NamedPeer").
		Extends(testPeer).
		Field("up", g.Const(true), "").
		Field("extra", g.Optional(g.String()), "").
		MustBuild()
	if diff := cmp.Diff([]string{"id", "name", "up", "nets", "extra"}, child.Fields()); diff != "" {
		t.Fatalf("field order (-want +got):\n%s", diff)
	}
	obj := child.MustNew(map[string]any{"id": 1, "name": "n"})
	if obj.Value("up") != true {
		t.Fatalf("override default applies, got %v", obj.Value("up"))
	}
	if !obj.Is(testPeer) || !obj.Is(child) {
		t.Fatalf("Is must follow the parent chain")
	}
	attr, _ := child.Doc().Attr("id")
	if attr.Desc != "the peer id" {
		t.Fatalf("inherited description lost: %q", attr.Desc)
	}
}

func TestRecord_DocParsing(t *testing.T) {
	n := testPeer.Doc()
	if n.Desc != "A network peer." {
		t.Fatalf("unexpected description %q", n.Desc)
	}
	for name, want := range map[string]string{"id": "the peer id", "name": "human readable name", "up": "whether the peer is reachable"} {
		a, ok := n.Attr(name)
		if !ok || a.Desc != want {
			t.Fatalf("attr %s: got %q", name, a.Desc)
		}
	}
	s := testPeer.JSONSchema()
	if diff := cmp.Diff([]string{"id", "name"}, s.Required); diff != "" {
		t.Fatalf("required (-want +got):\n%s", diff)
	}
}

func TestRecord_DeclarationErrors(t *testing.T) {
	_, err := g.Record("Dup").Field("a", g.Int(), "").Field("a", g.Int(), "").Build()
	if !errors.Is(err, spschema.ErrDeclaration) {
		t.Fatalf("expected ErrDeclaration, got %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustBuild must panic")
		}
	}()
	g.Record("").MustBuild()
}

var downDisk = g.Record("DownDisk").
	Field("id", g.IntRange("DiskId", 0, 4095), "").
	Field("up", g.Const(false), "").
	MustBuild()

var upDisk = g.Record("UpDisk").
	Field("id", g.IntRange("DiskId", 0, 4095), "").
	Field("up", g.Const(true), "").
	Field("generationLeft", g.Const(-1), "").
	MustBuild()

var diskSummary = g.Either(upDisk, downDisk)

func TestEither_DiscriminatesRecords(t *testing.T) {
	v, err := diskSummary.Validate(map[string]any{"id": 1, "up": false})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !v.(*g.Object).Is(downDisk) {
		t.Fatalf("expected a down disk")
	}
	v, err = diskSummary.Validate(map[string]any{"id": 2, "up": true, "generationLeft": -1})
	if err != nil || !v.(*g.Object).Is(upDisk) {
		t.Fatalf("expected an up disk, got %v %v", v, err)
	}
	if _, err := diskSummary.Validate(map[string]any{"id": 5000, "up": true}); codeOf(t, err) != spschema.CodeNoMatch {
		t.Fatalf("expected no_match")
	}
}

func TestListOfRecords_NestedIssuePaths(t *testing.T) {
	_, err := g.ListOf(testPeer).Validate([]any{
		map[string]any{"id": 1, "name": "a"},
		map[string]any{"id": 1, "name": 5},
	})
	p, _ := spschema.PartialOf(err)
	list := p.([]any)
	if len(list) != 2 || list[1].(*g.Object).Value("name") != nil {
		t.Fatalf("partial objects are kept in the list, got %v", list)
	}
	iss, _ := spschema.AsIssues(err)
	if len(iss) != 1 || iss[0].Path != "/1/name" {
		t.Fatalf("unexpected issues %v", iss)
	}
}
