package method

import (
	"strings"

	spschema "github.com/storpool/spschema"
)

// Registry indexes compiled methods by name and by query. It is filled
// once while the declarations are evaluated and only read afterwards.
type Registry struct {
	byName  map[string]*Func
	byQuery map[string]*Func
	order   []*Func
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]*Func{}, byQuery: map[string]*Func{}}
}

// Add registers f. A second method with the same name panics. Methods
// sharing a verb and query name (VolumeAbandonDisk serves volumes and
// snapshots) are found by Lookup in registration order.
func (r *Registry) Add(f *Func) *Func {
	if _, dup := r.byName[f.name]; dup {
		panic(&spschema.UsageError{Op: "register", Name: f.name, Err: spschema.ErrDeclaration})
	}
	key := queryKey(f.Verb(), f.doc.ID())
	if _, taken := r.byQuery[key]; !taken {
		r.byQuery[key] = f
	}
	r.byName[f.name] = f
	r.order = append(r.order, f)
	return f
}

// Get returns the method named name.
func (r *Registry) Get(name string) (*Func, bool) {
	f, ok := r.byName[name]
	return f, ok
}

// Lookup finds a method by verb and query, as typed on a command line:
// only the first path segment of query counts and a leading
// "MultiCluster/" is ignored.
func (r *Registry) Lookup(verb, query string) (*Func, bool) {
	query = strings.TrimPrefix(strings.TrimPrefix(query, "/"), "MultiCluster/")
	first, _, _ := strings.Cut(query, "/")
	f, ok := r.byQuery[queryKey(strings.ToUpper(verb), first)]
	return f, ok
}

// Funcs returns the methods in registration order.
func (r *Registry) Funcs() []*Func { return append([]*Func(nil), r.order...) }

// Len returns the number of registered methods.
func (r *Registry) Len() int { return len(r.order) }

func queryKey(verb, first string) string { return verb + " " + first }
