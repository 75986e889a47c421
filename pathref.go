package spschema

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
// The zero value is the root.
type PathRef struct {
	parts []string
}

// Root returns the root path.
func Root() PathRef { return PathRef{} }

// At parses a JSON Pointer into a PathRef.
func At(pointer string) PathRef {
	if pointer == "" || pointer == "/" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(pointer, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return PathRef{parts: parts}
}

func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return PathRef{parts: append(append([]string{}, p.parts...), escapeToken(name))}
}

func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p PathRef) Issue(code, msg string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}

// JoinPointer prefixes pointer with the escaped token key. An empty key
// leaves pointer unchanged.
func JoinPointer(key, pointer string) string {
	if key == "" {
		if pointer == "" {
			return "/"
		}
		return pointer
	}
	if pointer == "" || pointer == "/" {
		return "/" + escapeToken(key)
	}
	return "/" + escapeToken(key) + pointer
}

// escape '~' -> '~0', '/' -> '~1' per RFC6901
func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
