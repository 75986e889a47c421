package wire

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"

	spschema "github.com/storpool/spschema"
)

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type dupFrame struct {
	kind         frameKind
	path         spschema.PathRef
	keys         map[string]struct{}
	expectingKey bool
	key          string
	next         int
}

// DuplicateKeys scans body for objects that repeat a key (Decode keeps
// the last value). maxIssues <= 0 means unlimited. A malformed document
// yields a trailing parse_error issue.
func DuplicateKeys(body []byte, maxIssues int) spschema.Issues {
	dec := gojson.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var issues spschema.Issues
	var stack []dupFrame

	// path of the value about to start in the current container
	childPath := func() spschema.PathRef {
		if len(stack) == 0 {
			return spschema.Root()
		}
		top := &stack[len(stack)-1]
		if top.kind == frameObject {
			return top.path.Field(top.key)
		}
		p := top.path.Index(top.next)
		top.next++
		return p
	}
	valueDone := func() {
		if len(stack) > 0 && stack[len(stack)-1].kind == frameObject {
			stack[len(stack)-1].expectingKey = true
		}
	}

	for {
		if maxIssues > 0 && len(issues) >= maxIssues {
			return issues
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) && len(stack) == 0 {
			return issues
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return append(issues, spschema.Issue{Path: "/", Code: spschema.CodeParseError, Message: err.Error(), Cause: err})
		}

		if d, ok := tok.(gojson.Delim); ok {
			switch d {
			case '{':
				stack = append(stack, dupFrame{kind: frameObject, path: childPath(), keys: map[string]struct{}{}, expectingKey: true})
			case '[':
				stack = append(stack, dupFrame{kind: frameArray, path: childPath()})
			case '}', ']':
				stack = stack[:len(stack)-1]
				valueDone()
			}
			continue
		}

		if s, ok := tok.(string); ok && len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.kind == frameObject && top.expectingKey {
				if _, dup := top.keys[s]; dup {
					issues = append(issues, top.path.Field(s).Issue(spschema.CodeDuplicateKey,
						"key "+strconv.Quote(s)+" duplicated", "key", s))
				}
				top.keys[s] = struct{}{}
				top.key = s
				top.expectingKey = false
				continue
			}
		}
		// scalar value
		if len(stack) > 0 && stack[len(stack)-1].kind == frameArray {
			stack[len(stack)-1].next++
		}
		valueDone()
	}
}
