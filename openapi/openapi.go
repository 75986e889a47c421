// Package openapi describes declared API methods as an OpenAPI 3.1
// document.
package openapi

import (
	"fmt"
	"net/http"

	gojson "github.com/goccy/go-json"
	"github.com/swaggest/openapi-go/openapi31"
	"gopkg.in/yaml.v3"

	"github.com/storpool/spschema/docs"
	js "github.com/storpool/spschema/jsonschema"
	"github.com/storpool/spschema/method"
)

// Version is the OpenAPI version of built documents.
const Version = "3.1.0"

// ExtMultiCluster marks operations that may be sent through the
// MultiCluster/ path component.
const ExtMultiCluster = "x-storpool-multicluster"

// Source provides the methods and their documentation. *storpool.API
// implements it.
type Source interface {
	Methods() *method.Registry
	Doc() *docs.API
}

// Build returns the document for every method of src, tagged with its
// documentation section. Of several methods sharing a verb and query
// only the one the registry routes to is included.
func Build(src Source, apiVersion string) (*openapi31.Spec, error) {
	reg, ref := src.Methods(), src.Doc()

	spec := &openapi31.Spec{Openapi: Version}
	spec.Info.Title = ref.Title
	spec.Info.Version = apiVersion
	if ref.Desc != "" {
		spec.Info.Description = ptr(ref.Desc)
	}

	byDoc := make(map[*docs.Method]*method.Func, reg.Len())
	for _, f := range reg.Funcs() {
		byDoc[f.Doc()] = f
	}
	for _, sec := range ref.Sections {
		spec.Tags = append(spec.Tags, openapi31.Tag{Name: sec.Name, Description: nonEmpty(sec.Desc)})
		for _, m := range sec.Methods {
			f := byDoc[m]
			if f == nil {
				continue
			}
			if routed, _ := reg.Lookup(f.Verb(), f.Query()); routed != f {
				continue
			}
			op, err := operation(f, sec.Name)
			if err != nil {
				return nil, err
			}
			path := method.FormatPath(f.Query(), false, "")
			if err := spec.AddOperation(f.Verb(), path, op); err != nil {
				return nil, fmt.Errorf("openapi: %s %s: %w", f.Verb(), path, err)
			}
		}
	}
	return spec, nil
}

func operation(f *method.Func, tag string) (openapi31.Operation, error) {
	doc := f.Doc()
	op := openapi31.Operation{
		ID:          ptr(f.Name()),
		Tags:        []string{tag},
		Summary:     ptr(doc.Title),
		Description: nonEmpty(doc.Desc),
	}
	if f.MultiCluster() {
		op.MapOfAnything = map[string]any{ExtMultiCluster: true}
	}

	for _, a := range f.Args() {
		s, err := schemaMap(a.Type.JSONSchema())
		if err != nil {
			return op, err
		}
		op.Parameters = append(op.Parameters, openapi31.ParameterOrReference{
			Parameter: &openapi31.Parameter{
				Name:     a.Name,
				In:       openapi31.ParameterInPath,
				Required: ptr(true),
				Schema:   s,
			},
		})
	}

	if jt, ok := f.JSONType(); ok {
		s, err := schemaMap(jt.JSONSchema())
		if err != nil {
			return op, err
		}
		content := map[string]openapi31.MediaType{"application/json": {Schema: s}}
		required := !jt.HasDefault()
		if f.Verb() == http.MethodGet {
			op.Parameters = append(op.Parameters, openapi31.ParameterOrReference{
				Parameter: &openapi31.Parameter{
					Name:     "json",
					In:       openapi31.ParameterInQuery,
					Required: ptr(required),
					Content:  content,
				},
			})
		} else {
			op.RequestBody = &openapi31.RequestBodyOrReference{
				RequestBody: &openapi31.RequestBody{Content: content, Required: ptr(required)},
			}
		}
	}

	ok, err := schemaMap(successEnvelope(f.Returns().JSONSchema()))
	if err != nil {
		return op, err
	}
	fail, err := schemaMap(errorEnvelope())
	if err != nil {
		return op, err
	}
	op.Responses = &openapi31.Responses{
		MapOfResponseOrReferenceValues: map[string]openapi31.ResponseOrReference{
			"200": {Response: &openapi31.Response{
				Description: "Success.",
				Content:     map[string]openapi31.MediaType{"application/json": {Schema: ok}},
			}},
		},
		Default: &openapi31.ResponseOrReference{Response: &openapi31.Response{
			Description: "An API error. The error member is also possible with status 200.",
			Content:     map[string]openapi31.MediaType{"application/json": {Schema: fail}},
		}},
	}
	return op, nil
}

func successEnvelope(data *js.Schema) *js.Schema {
	return &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"generation": {Type: "integer", Description: "The cluster generation."},
			"data":       data,
		},
		Required: []string{"generation", "data"},
	}
}

func errorEnvelope() *js.Schema {
	return &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"error": {
				Type: "object",
				Properties: map[string]*js.Schema{
					"name":      {Type: "string"},
					"descr":     {Type: "string"},
					"transient": {Type: "boolean"},
				},
				AdditionalProperties: true,
			},
		},
		Required: []string{"error"},
	}
}

// schemaMap converts a schema to the generic form the document embeds.
func schemaMap(s *js.Schema) (map[string]any, error) {
	if s == nil {
		return map[string]any{}, nil
	}
	raw, err := gojson.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := gojson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JSON renders spec indented.
func JSON(spec *openapi31.Spec) ([]byte, error) {
	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var v any
	if err := gojson.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return gojson.MarshalIndent(v, "", "  ")
}

// YAML renders spec as YAML with sorted keys.
func YAML(spec *openapi31.Spec) ([]byte, error) {
	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

func ptr[T any](v T) *T { return &v }

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
