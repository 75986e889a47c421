// Package method compiles declared API calls into functions that validate
// their arguments, build the request and decode the reply.
package method

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/docs"
	"github.com/storpool/spschema/dsl"
)

// Invocation errors. They are wrapped in *spschema.UsageError.
var (
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrUnexpectedJSON = errors.New("method takes no JSON body")
)

// Arg is a positional argument substituted into the query.
type Arg struct {
	Name string
	Type dsl.Type
}

// NewArg declares an argument.
func NewArg(name string, t dsl.Typed) Arg { return Arg{Name: name, Type: t.Type()} }

// Decl is a method declaration. Build one with GET or POST and finish it
// with Compile.
type Decl struct {
	verb    string
	query   string
	args    []Arg
	json    *dsl.Type
	returns *dsl.Type
	multi   bool
	title   string
	desc    string
}

// GET declares a GET call. GET calls must declare a return type.
func GET(query string, args ...Arg) *Decl { return &Decl{verb: "GET", query: query, args: args} }

// POST declares a POST call. The return type defaults to ApiOk.
func POST(query string, args ...Arg) *Decl {
	r := ApiOk.Type()
	return &Decl{verb: "POST", query: query, args: args, returns: &r}
}

// JSON sets the type of the request body. GET bodies travel in the
// json query parameter (?json=...).
func (d *Decl) JSON(t dsl.Typed) *Decl {
	jt := t.Type()
	d.json = &jt
	return d
}

// Returns sets the type the reply is decoded with.
func (d *Decl) Returns(t dsl.Typed) *Decl {
	rt := t.Type()
	d.returns = &rt
	return d
}

// MultiCluster marks the call as routable through the multicluster
// endpoint.
func (d *Decl) MultiCluster() *Decl {
	d.multi = true
	return d
}

// Doc sets the documentation title and description.
func (d *Decl) Doc(title, desc string) *Decl {
	d.title, d.desc = title, desc
	return d
}

var placeholderRE = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Compile checks the declaration and returns the callable. Every argument
// must appear as a {placeholder} in the query, in order, and vice versa.
// Declaration errors panic.
func (d *Decl) Compile(name string) *Func {
	fail := func(err error) {
		panic(&spschema.UsageError{Op: "declare", Name: name, Err: err})
	}
	if d.returns == nil {
		fail(fmt.Errorf("%w: %s %s has no return type", spschema.ErrDeclaration, d.verb, d.query))
	}
	ph := placeholderRE.FindAllStringSubmatch(d.query, -1)
	if len(ph) != len(d.args) {
		fail(fmt.Errorf("%w: %s has %d placeholders for %d arguments", spschema.ErrDeclaration, d.query, len(ph), len(d.args)))
	}
	for i, m := range ph {
		if m[1] != d.args[i].Name {
			fail(fmt.Errorf("%w: placeholder {%s} does not match argument %q", spschema.ErrDeclaration, m[1], d.args[i].Name))
		}
	}

	f := &Func{name: name, decl: *d}
	f.doc = &docs.Method{
		Title:        d.title,
		Desc:         d.desc,
		Verb:         d.verb,
		Query:        d.query,
		Path:         FormatPath(d.query, d.multi, ""),
		MultiCluster: d.multi,
		Returns:      d.returns.Doc(),
	}
	if f.doc.Title == "" {
		f.doc.Title = name
	}
	for _, a := range d.args {
		f.doc.Args = append(f.doc.Args, docs.Attr{Name: a.Name, Node: a.Type.Doc()})
	}
	if d.json != nil {
		f.doc.JSON = d.json.Doc()
	}
	return f
}

// Call carries the inputs of one invocation.
type Call struct {
	Args        []any
	JSON        any
	ClusterName string
}

// Func is a compiled method. It is immutable and safe for concurrent use.
type Func struct {
	name string
	decl Decl
	doc  *docs.Method
}

func (f *Func) Name() string       { return f.name }
func (f *Func) Verb() string       { return f.decl.verb }
func (f *Func) Query() string      { return f.decl.query }
func (f *Func) MultiCluster() bool { return f.decl.multi }
func (f *Func) Args() []Arg        { return append([]Arg(nil), f.decl.args...) }
func (f *Func) HasJSON() bool      { return f.decl.json != nil }
func (f *Func) Returns() dsl.Type  { return *f.decl.returns }
func (f *Func) Doc() *docs.Method  { return f.doc }

// JSONType returns the body type, if the method takes one.
func (f *Func) JSONType() (dsl.Type, bool) {
	if f.decl.json == nil {
		return dsl.Type{}, false
	}
	return *f.decl.json, true
}

// Request validates the inputs and builds the request without sending it.
// Arguments are checked in order and the first failure is returned.
func (f *Func) Request(call Call) (Request, error) {
	if len(call.Args) != len(f.decl.args) {
		return Request{}, &spschema.UsageError{Op: "call", Name: f.name,
			Err: fmt.Errorf("%w: want %d, got %d", ErrArgCount, len(f.decl.args), len(call.Args))}
	}
	query := f.decl.query
	for i, a := range f.decl.args {
		v, err := a.Type.Validate(call.Args[i])
		if err != nil {
			return Request{}, argError(f.name, a.Name, err)
		}
		query = strings.Replace(query, "{"+a.Name+"}", url.PathEscape(argText(v)), 1)
	}

	req := Request{Name: f.name, Verb: f.decl.verb, Query: query, MultiCluster: f.decl.multi, ClusterName: call.ClusterName}
	switch {
	case f.decl.json != nil:
		body, err := f.decl.json.Validate(call.JSON)
		if err != nil {
			return Request{}, argError(f.name, "json", err)
		}
		req.Body = body
	case call.JSON != nil:
		return Request{}, &spschema.UsageError{Op: "call", Name: f.name, Err: ErrUnexpectedJSON}
	}
	return req, nil
}

// Invoke validates the inputs, sends the request through tr and decodes
// the reply. A reply that decodes only partially is returned as the
// partial value with a warning logged through zerolog.Ctx(ctx); other
// decode errors and every transport error are returned.
func (f *Func) Invoke(ctx context.Context, tr Transport, call Call) (any, error) {
	req, err := f.Request(call)
	if err != nil {
		return nil, err
	}
	data, err := tr.Call(ctx, req)
	if err != nil {
		return nil, err
	}
	out, err := f.decl.returns.Validate(data)
	if err == nil {
		return out, nil
	}
	if p, ok := spschema.PartialOf(err); ok {
		zerolog.Ctx(ctx).Warn().
			Str("method", f.name).
			Str("path", req.Path()).
			Err(err).
			Msg("partial response decode")
		if po, ok := tr.(PartialObserver); ok {
			po.ObservePartial(req, err)
		}
		return p, nil
	}
	return nil, err
}

// Call is Invoke with positional arguments. When the method takes a body,
// it is the argument after the declared ones.
func (f *Func) Call(ctx context.Context, tr Transport, args ...any) (any, error) {
	call := Call{Args: args}
	if f.decl.json != nil && len(args) == len(f.decl.args)+1 {
		call.Args, call.JSON = args[:len(args)-1], args[len(args)-1]
	}
	return f.Invoke(ctx, tr, call)
}

func argError(method, arg string, err error) error {
	ve, ok := spschema.AsValidation(err)
	if !ok {
		return fmt.Errorf("%s: %s: %w", method, arg, err)
	}
	out := *ve
	out.Message = method + ": " + arg + ": " + ve.Message
	out.Partial = nil
	out.Issues = nil
	for _, is := range ve.AllIssues() {
		is.Path = spschema.JoinPointer(arg, is.Path)
		out.Issues = append(out.Issues, is)
	}
	return &out
}

func argText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	}
	return fmt.Sprint(v)
}
