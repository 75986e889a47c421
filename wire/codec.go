// Package wire encodes request bodies and decodes the response envelopes
// of the StorPool control-plane API.
//
// Successful responses look like {"generation": N, "data": ...}; failures
// look like {"error": {"name": ..., "descr": ..., "transient": ...}}.
// Numbers are decoded as json.Number so 64-bit sizes survive intact.
package wire

import (
	"bytes"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/storpool/spschema/dsl"
)

// Encode marshals v as a request body. Records, sets and maps with
// non-string keys are converted first, and nil values are dropped at
// every level.
func Encode(v any) ([]byte, error) {
	b, err := gojson.Marshal(dsl.Plain(v, true))
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return b, nil
}

// EncodeIndent is Encode with indentation, for human-readable output.
// Nil values are kept.
func EncodeIndent(v any) ([]byte, error) {
	b, err := gojson.MarshalIndent(dsl.Plain(v, false), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return b, nil
}

// Decode parses a single JSON document into plain values, keeping
// numbers as json.Number.
func Decode(b []byte) (any, error) { return DecodeReader(bytes.NewReader(b)) }

// DecodeReader is Decode for a stream.
func DecodeReader(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	return v, nil
}

// Envelope is a successful response.
type Envelope struct {
	Generation int64 `json:"generation"`
	Data       any   `json:"data"`
}

// ErrorBody is the "error" member of a failed response.
type ErrorBody struct {
	Name      string `json:"name"`
	Descr     string `json:"descr"`
	Transient bool   `json:"transient"`
	// Extra holds any other members the server sent along.
	Extra map[string]any `json:"-"`
}

// ErrorEnvelope is a failed response.
type ErrorEnvelope struct {
	Error *ErrorBody `json:"error"`
}

const (
	missingName  = "<Missing error name>"
	missingDescr = "<Missing error description>"
)

// DecodeResponse splits a response into its data payload or its error
// body. A response is an error when status is not 200 or the document has
// an "error" member. err is set only when the body cannot be parsed at
// all, in which case the returned ErrorBody (for non-200 statuses) still
// describes the failure.
func DecodeResponse(status int, body []byte) (*Envelope, *ErrorBody, error) {
	doc, err := Decode(body)
	if err != nil {
		if status != 200 {
			return nil, &ErrorBody{Name: "invalidResponse", Descr: fmt.Sprintf("HTTP status %d with a non-JSON body", status)}, err
		}
		return nil, nil, err
	}
	m, ok := doc.(map[string]any)
	if !ok {
		err := fmt.Errorf("wire: response is %T, not an object", doc)
		if status != 200 {
			return nil, &ErrorBody{Name: "invalidResponse", Descr: err.Error()}, err
		}
		return nil, nil, err
	}
	if raw, isErr := m["error"]; isErr || status != 200 {
		return nil, errorBody(raw), nil
	}
	env := &Envelope{Data: m["data"]}
	if g, ok := m["generation"].(interface{ Int64() (int64, error) }); ok {
		env.Generation, _ = g.Int64()
	}
	return env, nil, nil
}

func errorBody(raw any) *ErrorBody {
	eb := &ErrorBody{Name: missingName, Descr: missingDescr}
	m, ok := raw.(map[string]any)
	if !ok {
		return eb
	}
	for k, v := range m {
		switch k {
		case "name":
			if s, ok := v.(string); ok {
				eb.Name = s
			}
		case "descr":
			if s, ok := v.(string); ok {
				eb.Descr = s
			}
		case "transient":
			eb.Transient, _ = v.(bool)
		default:
			if eb.Extra == nil {
				eb.Extra = map[string]any{}
			}
			eb.Extra[k] = v
		}
	}
	return eb
}

// MarshalJSON writes the body with its extra members.
func (e *ErrorBody) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(e.Extra)+3)
	for k, v := range e.Extra {
		m[k] = v
	}
	m["name"] = e.Name
	m["descr"] = e.Descr
	m["transient"] = e.Transient
	return gojson.Marshal(m)
}
