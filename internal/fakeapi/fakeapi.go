// Package fakeapi is an in-process stand-in for the StorPool control-plane
// API, for tests. Replies are scripted per verb and query name.
package fakeapi

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	gojson "github.com/goccy/go-json"

	"github.com/storpool/spschema/wire"
)

// Recorded is a request the server received.
type Recorded struct {
	Verb         string
	Query        string // path after the prefix and routing segments
	Cluster      string // RemoteCommand target, if any
	MultiCluster bool
	RawQuery     string
	Header       http.Header
	Body         []byte
}

// Reply is a scripted response.
type Reply struct {
	Status int
	// Body is encoded as JSON unless Raw is set.
	Body any
	Raw  []byte
	// Hangup closes the connection without answering.
	Hangup bool
}

// OK wraps data in a success envelope.
func OK(data any) Reply {
	return Reply{Status: http.StatusOK, Body: wire.Envelope{Generation: 1, Data: data}}
}

// Error is a failure envelope.
func Error(status int, name, descr string, transient bool) Reply {
	return Reply{Status: status, Body: wire.ErrorEnvelope{
		Error: &wire.ErrorBody{Name: name, Descr: descr, Transient: transient},
	}}
}

// Server is a running fake API.
type Server struct {
	*httptest.Server
	// Token, when set, must be presented as "Storpool v1:<Token>".
	Token string

	mu       sync.Mutex
	scripts  map[string][]Reply
	requests []Recorded
}

// New starts a server. Call Close when done.
func New() *Server {
	s := &Server{scripts: map[string][]Reply{}}
	s.Server = httptest.NewServer(s.Router())
	return s
}

// Router returns the handler tree.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Handle("/ctrl/1.0/*", http.HandlerFunc(s.serve))
	return r
}

// Script queues replies for verb and the first segment of the query. Each
// request consumes one reply; the last one repeats.
func (s *Server) Script(verb, name string, replies ...Reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[verb+" "+name] = append(s.scripts[verb+" "+name], replies...)
}

// Requests returns what was received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// HostPort splits the listening address.
func (s *Server) HostPort() (string, int) {
	host, port, _ := net.SplitHostPort(s.Listener.Addr().String())
	p, _ := strconv.Atoi(port)
	return host, p
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	rec := Recorded{Verb: r.Method, RawQuery: r.URL.RawQuery, Header: r.Header.Clone()}
	rec.Body, _ = io.ReadAll(r.Body)

	rest := chi.URLParam(r, "*")
	if c, ok := strings.CutPrefix(rest, "RemoteCommand/"); ok {
		rec.Cluster, rest, _ = strings.Cut(c, "/")
	}
	rest, rec.MultiCluster = strings.CutPrefix(rest, "MultiCluster/")
	rec.Query = rest

	s.mu.Lock()
	s.requests = append(s.requests, rec)
	s.mu.Unlock()

	if s.Token != "" && r.Header.Get("Authorization") != "Storpool v1:"+s.Token {
		write(w, Error(http.StatusUnauthorized, "authError", "missing or invalid token", false))
		return
	}
	name, _, _ := strings.Cut(rest, "/")
	write(w, s.next(r.Method+" "+name))
}

func (s *Server) next(key string) Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.scripts[key]
	if len(q) == 0 {
		return Error(http.StatusNotFound, "invalidParam", "unknown query "+key, false)
	}
	if len(q) > 1 {
		s.scripts[key] = q[1:]
	}
	return q[0]
}

func write(w http.ResponseWriter, rep Reply) {
	if rep.Hangup {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
				return
			}
		}
	}
	body := rep.Raw
	if body == nil {
		body, _ = gojson.Marshal(rep.Body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.Status)
	w.Write(body)
}
