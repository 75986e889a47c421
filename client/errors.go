package client

import (
	"errors"
	"io"
	"syscall"

	"github.com/storpool/spschema/wire"
)

// APIError is a failure reported by the API server: a non-200 status or a
// response carrying an "error" member.
type APIError struct {
	Status    int
	Name      string
	Descr     string
	Transient bool
	// Body is the decoded "error" member, extra fields included.
	Body *wire.ErrorBody
}

func (e *APIError) Error() string { return e.Name + ": " + e.Descr }

// IsAPIError reports whether err carries an APIError with the given name.
// An empty name matches any APIError.
func IsAPIError(err error, name string) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	return name == "" || ae.Name == name
}

func apiError(status int, eb *wire.ErrorBody) *APIError {
	return &APIError{Status: status, Name: eb.Name, Descr: eb.Descr, Transient: eb.Transient, Body: eb}
}

// retryReason classifies err. An empty result means the call must not be
// retried.
func retryReason(err error) string {
	var ae *APIError
	switch {
	case errors.As(err, &ae):
		if ae.Transient {
			return "transient"
		}
		return ""
	case errors.Is(err, syscall.ECONNREFUSED):
		return "refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "reset"
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return "protocol"
	}
	var pe *protocolError
	if errors.As(err, &pe) {
		return "protocol"
	}
	return ""
}

// protocolError marks a response that could not be read as HTTP.
type protocolError struct{ err error }

func (e *protocolError) Error() string { return "protocol error: " + e.err.Error() }
func (e *protocolError) Unwrap() error { return e.err }
