package openapi_test

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/storpool/spschema/openapi"
	"github.com/storpool/spschema/storpool"
)

func build(t *testing.T) map[string]any {
	t.Helper()
	spec, err := openapi.Build(storpool.New(nil), "19.01")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := openapi.JSON(spec)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func dig(t *testing.T, v any, keys ...string) any {
	t.Helper()
	for _, k := range keys {
		m, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("%s: not an object: %#v", k, v)
		}
		if v, ok = m[k]; !ok {
			t.Fatalf("missing %q", k)
		}
	}
	return v
}

func TestBuild_PathsAndOperations(t *testing.T) {
	doc := build(t)
	if doc["openapi"] != openapi.Version {
		t.Fatalf("openapi = %v", doc["openapi"])
	}
	if got := dig(t, doc, "info", "version"); got != "19.01" {
		t.Fatalf("info.version = %v", got)
	}

	op := dig(t, doc, "paths", "/ctrl/1.0/VolumeDescribe/{volumeName}", "get").(map[string]any)
	if op["operationId"] != "volumeDescribe" {
		t.Fatalf("operationId = %v", op["operationId"])
	}
	if op[openapi.ExtMultiCluster] != true {
		t.Fatal("volumeDescribe is a multicluster method")
	}
	params := op["parameters"].([]any)
	if len(params) != 1 {
		t.Fatalf("parameters = %v", params)
	}
	p := params[0].(map[string]any)
	if p["name"] != "volumeName" || p["in"] != "path" || p["required"] != true {
		t.Fatalf("parameter = %v", p)
	}

	env := dig(t, op, "responses", "200", "content", "application/json", "schema").(map[string]any)
	if _, ok := dig(t, env, "properties").(map[string]any)["data"]; !ok {
		t.Fatalf("success envelope = %v", env)
	}
	dig(t, op, "responses", "default", "content", "application/json", "schema", "properties", "error")
}

func TestBuild_Bodies(t *testing.T) {
	doc := build(t)
	post := dig(t, doc, "paths", "/ctrl/1.0/VolumeCreate", "post").(map[string]any)
	dig(t, post, "requestBody", "content", "application/json", "schema")
	if _, ok := post[openapi.ExtMultiCluster]; !ok {
		t.Error("volumeCreate is a multicluster method")
	}

	list := dig(t, doc, "paths", "/ctrl/1.0/DisksList", "get").(map[string]any)
	if _, ok := list["requestBody"]; ok {
		t.Error("GET without a body")
	}

	sessions := dig(t, doc, "paths", "/ctrl/1.0/iSCSISessionsInfo", "get").(map[string]any)
	if _, ok := sessions["requestBody"]; ok {
		t.Error("GET bodies are query parameters")
	}
	params := sessions["parameters"].([]any)
	if len(params) != 1 {
		t.Fatalf("parameters = %v", params)
	}
	p := params[0].(map[string]any)
	if p["name"] != "json" || p["in"] != "query" || p["required"] != false {
		t.Fatalf("parameter = %v", p)
	}
	dig(t, p, "content", "application/json", "schema")

	cfg := dig(t, doc, "paths", "/ctrl/1.0/iSCSIConfig").(map[string]any)
	dig(t, cfg, "get", "responses", "200")
	dig(t, cfg, "post", "requestBody", "content", "application/json", "schema")
}

func TestBuild_ShadowedAndTags(t *testing.T) {
	doc := build(t)
	paths := doc["paths"].(map[string]any)
	for path, item := range paths {
		for _, op := range item.(map[string]any) {
			if id, _ := op.(map[string]any)["operationId"].(string); id == "snapshotAbandonDisk" {
				t.Fatalf("shadowed method documented at %s", path)
			}
		}
	}

	var tags []string
	for _, tag := range doc["tags"].([]any) {
		tags = append(tags, tag.(map[string]any)["name"].(string))
	}
	if !strings.Contains(strings.Join(tags, ","), "Placement Groups") {
		t.Fatalf("tags = %v", tags)
	}
}

func TestYAML(t *testing.T) {
	spec, err := openapi.Build(storpool.New(nil), "19.01")
	if err != nil {
		t.Fatal(err)
	}
	out, err := openapi.YAML(spec)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "operationId: disksList") {
		t.Fatalf("yaml output lacks disksList:\n%.400s", out)
	}
}
