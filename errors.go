package spschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/storpool/spschema/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType     = "invalid_type"
	CodeInvalidArgument = "invalid_argument"
	CodeRequired        = "required"
	CodeNoDefault       = "no_default"
	CodeUnknownKey      = "unknown_key"
	CodeTooSmall        = "too_small"
	CodeTooBig          = "too_big"
	CodeTooLong         = "too_long"
	CodePattern         = "pattern"
	CodeInvalidEnum     = "invalid_enum"
	CodeConstMismatch   = "const_mismatch"
	CodeNoMatch         = "no_match"
	CodeReservedName    = "reserved_name"
	CodeNotMultiple     = "not_multiple"
	CodeNotPositive     = "not_positive"
	CodeParseError      = "parse_error"
	CodeDuplicateKey    = "duplicate_key"

	codeRewrap = "rewrap"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /disks/3/objects).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":1, "max":10, "value":42})
	// for i18n and observability.
	Params map[string]any
	Cause  error // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. pattern at /placeAll
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error. A ValidationError yields every
// leaf issue it collected.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	if ve, ok := AsValidation(err); ok {
		return ve.AllIssues(), true
	}
	return nil, false
}

// ValidationError reports a value that failed its type's constraints.
// Partial holds the best-effort value built before the failure, if any.
type ValidationError struct {
	Code    string
	Message string
	Params  map[string]any
	Partial any
	// Issues lists every leaf failure with its path when the error was
	// accumulated over the fields or elements of a composite value.
	Issues Issues
	Cause  error
}

// NewError builds a ValidationError whose message is the translated
// template for code with params substituted.
func NewError(code string, params map[string]any) *ValidationError {
	return &ValidationError{Code: code, Message: i18n.T(code, stringify(params)), Params: params}
}

// NewErrorMsg builds a ValidationError with an explicit message.
func NewErrorMsg(code, msg string, params map[string]any) *ValidationError {
	return &ValidationError{Code: code, Message: msg, Params: params}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Cause }

// WithPartial returns a copy of e carrying v as its partial value.
func (e *ValidationError) WithPartial(v any) *ValidationError {
	out := *e
	out.Partial = v
	return &out
}

// Issue returns the error as a single root-level Issue.
func (e *ValidationError) Issue() Issue {
	return Issue{Path: "/", Code: e.Code, Message: e.Message, Params: e.Params, Cause: e.Cause}
}

// AllIssues returns the accumulated leaf issues, or the error itself as a
// single issue when nothing was accumulated.
func (e *ValidationError) AllIssues() Issues {
	if len(e.Issues) > 0 {
		return e.Issues
	}
	return Issues{e.Issue()}
}

// AsValidation extracts a ValidationError using errors.As.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// PartialOf returns the partial value carried by a ValidationError in err.
func PartialOf(err error) (any, bool) {
	ve, ok := AsValidation(err)
	if !ok || ve.Partial == nil {
		return nil, false
	}
	return ve.Partial, true
}

// Usage errors. These signal programmer mistakes and are never recovered
// into partial values.
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrRewrapOverrides = errors.New("cannot apply overrides to an already constructed value")
	ErrDeclaration     = errors.New("invalid declaration")
)

// UsageError reports misuse of a declared type or method.
type UsageError struct {
	Op   string // e.g. "get", "set", "new"
	Name string // record or method name
	Key  string
	Err  error
}

func (e *UsageError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnknownField):
		return i18n.T(CodeUnknownKey, map[string]string{"name": e.Name, "key": e.Key})
	case errors.Is(e.Err, ErrRewrapOverrides):
		return i18n.T(codeRewrap, map[string]string{"name": e.Name})
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %s.%s: %v", e.Op, e.Name, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *UsageError) Unwrap() error { return e.Err }

func stringify(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		switch vv := v.(type) {
		case string:
			out[k] = vv
		case []string:
			out[k] = "[" + strings.Join(vv, ", ") + "]"
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
