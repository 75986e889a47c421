package docs

import (
	"fmt"
	"html"
	"io"
	"strings"
)

const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: auto; }
pre { background: #f4f4f4; padding: 0.5em; }
span.opt { color: #888; }
li.attribute { margin-top: 0.3em; }
</style>
</head>
<body>
`

// RenderHTML writes the HTML reference for api to w.
func RenderHTML(w io.Writer, api *API) error {
	h := &htmlBuf{}
	h.raw(fmt.Sprintf(pageHead, html.EscapeString(api.Title)))
	h.add("<h1>{0}</h1>\n", api.Title)
	h.desc(api.Desc)

	h.raw("<ol>\n")
	for _, s := range api.Sections {
		h.add("<li><a href=\"#{0}\">{1}</a></li>\n", s.ID(), s.Name)
		h.raw("<ol>\n")
		for _, m := range s.Methods {
			h.add("<li><a href=\"#{0}\">{1}</a></li>\n", m.ID(), methodTitle(m))
		}
		h.raw("</ol>\n")
	}
	h.raw("<li><a href=\"#types\">Data Types</a></li>\n</ol>\n")

	for _, s := range api.Sections {
		h.add("<h2 id=\"{0}\">{1}</h2>\n", s.ID(), s.Name)
		h.desc(s.Desc)
		for _, m := range s.Methods {
			h.method(m)
		}
	}

	h.raw("<h2 id=\"types\">Data Types</h2>\n<table>\n")
	for _, n := range api.Types() {
		h.add("<tr id=\"{0}\"><td><strong>{0}</strong>:</td><td>{1}</td></tr>\n", n.Name, n.Desc)
	}
	h.raw("</table>\n</body>\n</html>\n")

	_, err := io.WriteString(w, h.String())
	return err
}

func methodTitle(m *Method) string {
	if m.Title == "" {
		return "XXX Missing title."
	}
	return m.Title
}

type htmlBuf struct{ strings.Builder }

func (h *htmlBuf) raw(s string) { h.WriteString(s) }

// add substitutes {i} with the escaped i-th argument.
func (h *htmlBuf) add(format string, args ...string) {
	pairs := make([]string, 0, 2*len(args))
	for i, a := range args {
		pairs = append(pairs, fmt.Sprintf("{%d}", i), html.EscapeString(a))
	}
	h.WriteString(strings.NewReplacer(pairs...).Replace(format))
}

// desc renders free text: paragraphs separated by blank lines and ```
// fenced code blocks.
func (h *htmlBuf) desc(text string) {
	var para []string
	flush := func() {
		if len(para) > 0 {
			h.add("<p>{0}</p>\n", strings.Join(para, "\n"))
			para = nil
		}
	}
	inCode, indent := false, 0
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case inCode && trimmed == "```":
			h.raw("</code></pre>\n")
			inCode = false
		case inCode:
			if len(line) >= indent {
				line = line[indent:]
			}
			h.add("{0}\n", line)
		case trimmed == "```":
			flush()
			h.raw("<pre class=\"code\"><code>")
			indent = len(line) - 3
			inCode = true
		case trimmed != "":
			para = append(para, trimmed)
		default:
			flush()
		}
	}
	flush()
}

func (h *htmlBuf) method(m *Method) {
	h.add("<h3 id=\"{0}\">{1} (<strong>{0}</strong>)</h3>\n", m.ID(), methodTitle(m))
	if m.Desc != "" {
		h.add("<p>{0}</p>\n", strings.TrimSpace(m.Desc))
	}

	h.raw("<ol><li>Request:\n<ul><li>Example HTTP Request:\n<pre><code>")
	h.add("{0} {1} HTTP/1.0\r\n", m.Verb, m.Path)
	h.raw("Host: <var>SP_API_HOST</var>:<var>SP_API_PORT</var>\r\n")
	h.raw("Authorization: Storpool v1:<var>SP_AUTH_TOKEN</var>\r\n")
	h.raw("Content-Length: <var>LENGTH</var>\r\n\r\n")
	if m.JSON != nil {
		h.example(m.JSON, 0)
	}
	h.raw("</code></pre></li>\n")
	h.add("<li>Method: <em>{0}</em></li>\n", m.Verb)
	h.add("<li>Path: <em>{0}</em></li>\n", m.Path)

	h.raw("<li>Arguments: ")
	if len(m.Args) > 0 {
		h.raw("\n<ul>\n")
		for _, a := range m.Args {
			h.add("<li>{0} - <strong>{1}</strong>: <em>{2}</em></li>\n", a.Name, a.Node.Name, a.Node.Desc)
		}
		h.raw("</ul>\n")
	} else {
		h.raw("<em>No arguments</em>")
	}
	h.raw("</li>\n<li>JSON: ")
	if m.JSON != nil {
		h.attrList(m.JSON)
	} else {
		h.raw("<em>Either no JSON or {}</em>")
	}
	h.raw("</li>\n</ul>\n</li>\n")

	h.raw("<li>Response:\n<ul>\n<li>Example HTTP Response:\n<pre><code>")
	h.raw("HTTP/1.0 200 OK\r\nConnection: close\r\nContent-Type: application/json\r\n")
	h.raw("Cache-control: private\r\nContent-Length: <var>LENGTH</var>\r\n\r\n")
	h.raw("{\n  \"generation\": <var>generation</var>,\n  \"data\": ")
	h.example(m.Returns, 2)
	h.raw("\n}\n</code></pre>\n</li>\n<li>Response Data:\n")
	h.attrList(m.Returns)
	h.raw("</li>\n</ul>\n</li>\n</ol>\n")
}

func (h *htmlBuf) attrList(n *Node) {
	switch n.Kind {
	case KindType:
		h.add("<strong><a href=\"#{0}\">{0}</a></strong>", n.Name)
	case KindOptional:
		h.add("<span class=\"opt\">{0}</span> ", n.Name)
		h.attrList(n.Children[0])
	case KindEither:
		h.add("{0}\n<ul><em>Subtypes:</em>\n", n.Desc)
		for _, c := range n.Children {
			h.raw("<li>")
			h.attrList(c)
			h.raw("</li>\n")
		}
		h.raw("</ul>\n")
	case KindList:
		h.raw("<ul><li>Element type: ")
		h.attrList(n.Children[0])
		h.raw("</li></ul>\n")
	case KindMap:
		h.add("{0}\n<ul>\n<li>Key type: ", n.Desc)
		h.attrList(n.Children[0])
		h.raw("</li>\n<li>Value type: ")
		h.attrList(n.Children[1])
		h.raw("</li>\n</ul>\n")
	case KindRecord:
		h.add("<strong>{0}</strong>", n.Name)
		h.recordAttrs(n)
	}
}

func (h *htmlBuf) recordAttrs(n *Node) {
	h.raw("<ul>\n")
	for _, a := range n.SortedAttrs() {
		h.add("<li class=\"attribute\">{0}: ", a.Name)
		switch a.Node.Kind {
		case KindType, KindOptional:
			h.raw(" (")
			h.attrList(a.Node)
			h.raw(")")
			if a.Desc != "" {
				h.add(": {0}", a.Desc)
			}
		case KindRecord:
			if a.Desc != "" {
				h.add(" {0}", a.Desc)
			}
			h.recordAttrs(a.Node)
		default:
			if a.Desc != "" {
				h.add(" {0}", a.Desc)
			}
			h.attrList(a.Node)
		}
		h.raw("</li>")
	}
	h.raw("</ul>\n")
}

// example renders a JSON-shaped sample of n, indented by pad.
func (h *htmlBuf) example(n *Node, pad int) {
	switch n.Kind {
	case KindType:
		h.add("<var>{0}</var>", n.Name)
	case KindOptional:
		h.example(n.Children[0], pad)
		h.add(" <span class=\"opt\">/* {0} */</span>", n.Name)
	case KindEither:
		h.raw("Either(")
		for i, c := range n.Children {
			if i > 0 {
				h.raw(", ")
			}
			h.example(c, pad)
		}
		h.raw(")")
	case KindList:
		h.raw("[")
		h.example(n.Children[0], pad)
		h.raw(", ...]")
	case KindMap:
		h.raw("{\n" + strings.Repeat(" ", pad+2) + "\"")
		h.example(n.Children[0], pad+2)
		h.raw("\": ")
		h.example(n.Children[1], pad+2)
		h.raw(", ...\n" + strings.Repeat(" ", pad) + "}")
	case KindRecord:
		if len(n.Attrs) == 0 {
			h.raw("{}")
			return
		}
		h.raw("{\n")
		for i, a := range n.SortedAttrs() {
			if i > 0 {
				h.raw(",\n")
			}
			h.add(strings.Repeat(" ", pad+2)+"\"{0}\": ", a.Name)
			h.example(a.Node, pad+2)
		}
		h.raw("\n" + strings.Repeat(" ", pad) + "}")
	}
}
