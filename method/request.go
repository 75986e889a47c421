package method

import (
	"context"
	"strings"
)

// Prefix is the path prefix of every control-plane call.
const Prefix = "/ctrl/1.0"

// Request is a validated call, ready for a Transport.
type Request struct {
	Name  string // compiled function name, for logs and metrics
	Verb  string // GET or POST
	Query string // query with the arguments substituted
	// MultiCluster is set when the method may be routed through the
	// multicluster endpoint. Transports combine it with their own setting.
	MultiCluster bool
	ClusterName  string
	Body         any // validated body, nil when the method takes none
}

// Path returns the request path, see FormatPath.
func (r Request) Path() string { return FormatPath(r.Query, r.MultiCluster, r.ClusterName) }

// FormatPath builds /ctrl/1.0/[RemoteCommand/<cluster>/][MultiCluster/]<query>.
func FormatPath(query string, multiCluster bool, clusterName string) string {
	var b strings.Builder
	b.WriteString(Prefix)
	b.WriteByte('/')
	if clusterName != "" {
		b.WriteString("RemoteCommand/")
		b.WriteString(clusterName)
		b.WriteByte('/')
	}
	if multiCluster {
		b.WriteString("MultiCluster/")
	}
	b.WriteString(query)
	return b.String()
}

// Transport performs a request and returns the decoded "data" member of
// the response. Failures reported by the server must not be
// *spschema.ValidationError values.
type Transport interface {
	Call(ctx context.Context, req Request) (any, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req Request) (any, error)

func (f TransportFunc) Call(ctx context.Context, req Request) (any, error) { return f(ctx, req) }

// PartialObserver is implemented by transports that want to know when a
// response was accepted with a partial decode.
type PartialObserver interface {
	ObservePartial(req Request, err error)
}
