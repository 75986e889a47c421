// Package docs holds the documentation tree that mirrors declared types,
// records and API methods. The tree is built once while declarations are
// evaluated and is read-only afterwards; renderers only walk it.
package docs

import (
	"sort"
	"strings"
)

// Kind discriminates documentation nodes.
type Kind int

const (
	KindType Kind = iota
	KindOptional
	KindList
	KindMap
	KindEither
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindOptional:
		return "optional"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindEither:
		return "either"
	case KindRecord:
		return "record"
	}
	return "unknown"
}

// Node documents one type.
type Node struct {
	Kind Kind
	Name string
	Desc string
	// Children are the component types: the element of a list, key and
	// value of a map, the alternatives of an either, the wrapped type of
	// an optional.
	Children []*Node
	// Attrs are the fields of a record in declaration order.
	Attrs []Attr
}

// Attr documents a record field or a method argument.
type Attr struct {
	Name string
	Node *Node
	Desc string
}

// Leaf documents a type without components.
func Leaf(name, desc string) *Node {
	return &Node{Kind: KindType, Name: strings.TrimSpace(name), Desc: strings.TrimSpace(desc)}
}

// Optional documents a wrapper such as Optional(T) or Internal(T).
func Optional(name, desc string, inner *Node) *Node {
	return &Node{Kind: KindOptional, Name: name, Desc: strings.TrimSpace(desc), Children: []*Node{inner}}
}

func List(name, desc string, elem *Node) *Node {
	return &Node{Kind: KindList, Name: name, Desc: desc, Children: []*Node{elem}}
}

func Map(name, desc string, key, val *Node) *Node {
	return &Node{Kind: KindMap, Name: name, Desc: desc, Children: []*Node{key, val}}
}

func Either(name, desc string, alts ...*Node) *Node {
	return &Node{Kind: KindEither, Name: name, Desc: desc, Children: alts}
}

func Record(name, desc string, attrs []Attr) *Node {
	return &Node{Kind: KindRecord, Name: name, Desc: strings.TrimSpace(desc), Attrs: attrs}
}

// Attr looks up a record attribute by name.
func (n *Node) Attr(name string) (Attr, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// SortedAttrs returns the record attributes ordered by name.
func (n *Node) SortedAttrs() []Attr {
	out := append([]Attr(nil), n.Attrs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Walk visits n and every node reachable from it once, depth first.
func Walk(n *Node, fn func(*Node)) {
	walk(n, fn, map[*Node]bool{})
}

func walk(n *Node, fn func(*Node), seen map[*Node]bool) {
	if n == nil || seen[n] {
		return
	}
	seen[n] = true
	fn(n)
	for _, c := range n.Children {
		walk(c, fn, seen)
	}
	for _, a := range n.Attrs {
		walk(a.Node, fn, seen)
	}
}

// Types collects the leaf types reachable from roots, deduplicated by
// name (the first node seen for a name wins) and sorted by name.
func Types(roots ...*Node) []*Node {
	byName := map[string]*Node{}
	seen := map[*Node]bool{}
	for _, r := range roots {
		walk(r, func(n *Node) {
			if n.Kind != KindType || len(n.Children) > 0 {
				return
			}
			if _, ok := byName[n.Name]; !ok {
				byName[n.Name] = n
			}
		}, seen)
	}
	out := make([]*Node, 0, len(byName))
	for _, n := range byName {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseAttrDescs extracts "name: description" lines from a record's doc
// text. Lines with more than one colon are ignored.
func ParseAttrDescs(text string) map[string]string {
	out := map[string]string{}
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		if k == "" || strings.ContainsAny(k, " \t") {
			continue
		}
		out[k] = strings.TrimSpace(parts[1])
	}
	return out
}

// SplitRecordDoc separates a record's doc text into its free-form
// description and the per-attribute "name: description" lines.
func SplitRecordDoc(text string) (string, map[string]string) {
	attrs := ParseAttrDescs(text)
	var keep []string
	for _, line := range strings.Split(text, "\n") {
		if k, _, ok := strings.Cut(line, ":"); ok {
			if _, isAttr := attrs[strings.TrimSpace(k)]; isAttr && strings.Count(line, ":") == 1 {
				continue
			}
		}
		keep = append(keep, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(keep, "\n")), attrs
}
