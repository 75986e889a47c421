package spschema

// Catch accumulates failures over a sequence of independent validation
// steps (record fields, list elements, map entries) while every step still
// runs. The recorded error follows these rules:
//
//   - a ValidationError replaces a previously recorded plain error;
//   - otherwise the first recorded error is kept.
//
// The zero value is ready to use.
type Catch struct {
	err    error
	issues Issues
}

// Step runs fn under key and reports the value to accumulate. On a
// ValidationError the error's partial value is returned, so callers keep
// whatever part of the element did validate. ok is false when there is
// nothing to accumulate.
func (c *Catch) Step(key string, fn func() (any, error)) (any, bool) {
	v, err := fn()
	if err == nil {
		return v, true
	}
	if ve, isVE := AsValidation(err); isVE {
		for _, is := range ve.AllIssues() {
			is.Path = JoinPointer(key, is.Path)
			c.issues = append(c.issues, is)
		}
		if _, recorded := c.err.(*ValidationError); !recorded {
			c.err = ve
		}
		if ve.Partial != nil {
			return ve.Partial, true
		}
		return nil, false
	}
	c.issues = AppendIssues(c.issues, Issue{
		Path:    JoinPointer(key, "/"),
		Code:    CodeInvalidArgument,
		Message: err.Error(),
		Cause:   err,
	})
	if c.err == nil {
		c.err = err
	}
	return nil, false
}

// Err returns the recorded error, if any.
func (c *Catch) Err() error { return c.err }

// Finalize converts the recorded error into a ValidationError named after
// the enclosing value and carrying partial. It returns nil when every step
// succeeded.
func (c *Catch) Finalize(name string, partial any) error {
	if c.err == nil {
		return nil
	}
	var out *ValidationError
	if ve, ok := c.err.(*ValidationError); ok {
		out = &ValidationError{Code: ve.Code, Message: name + ": " + ve.Message, Params: ve.Params, Cause: ve.Cause}
	} else {
		out = &ValidationError{Code: CodeInvalidArgument, Message: name + ": " + c.err.Error(), Cause: c.err}
	}
	out.Partial = partial
	out.Issues = c.issues
	return out
}
