package docs

import "strings"

// Method documents one API call.
type Method struct {
	Title        string
	Desc         string
	Verb         string
	Query        string // path template, e.g. "DiskDescribe/{diskId}"
	Path         string // full request path, e.g. "/ctrl/1.0/DiskDescribe/{diskId}"
	MultiCluster bool
	Args         []Attr
	JSON         *Node
	Returns      *Node
}

// ID is the first component of the query, used as the HTML anchor and by
// the CLI to look methods up.
func (m *Method) ID() string {
	q, _, _ := strings.Cut(m.Query, "/")
	return q
}

// Section groups related methods.
type Section struct {
	Name    string
	Desc    string
	Methods []*Method
}

func (s *Section) ID() string { return strings.ReplaceAll(s.Name, " ", "-") }

// Add appends m to the section.
func (s *Section) Add(m *Method) { s.Methods = append(s.Methods, m) }

// API is the root of the documentation tree.
type API struct {
	Title    string
	Desc     string
	Sections []*Section
}

func NewAPI(title, desc string) *API {
	return &API{Title: strings.TrimSpace(title), Desc: desc}
}

// Section starts a new section; methods added afterwards belong to it.
func (a *API) Section(name, desc string) *Section {
	s := &Section{Name: name, Desc: desc}
	a.Sections = append(a.Sections, s)
	return s
}

// Methods returns every method in section order.
func (a *API) Methods() []*Method {
	var out []*Method
	for _, s := range a.Sections {
		out = append(out, s.Methods...)
	}
	return out
}

// Types returns the leaf data types referenced by any method.
func (a *API) Types() []*Node {
	var roots []*Node
	for _, m := range a.Methods() {
		for _, arg := range m.Args {
			roots = append(roots, arg.Node)
		}
		if m.JSON != nil {
			roots = append(roots, m.JSON)
		}
		roots = append(roots, m.Returns)
	}
	return Types(roots...)
}
