package prices

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline and query failures.
type Kind string

const (
	InvalidInput     Kind = "InvalidInput"
	ParseError       Kind = "ParseError"
	NoValidRows      Kind = "NoValidRows"
	StorageError     Kind = "StorageError"
	MissingParameter Kind = "MissingParameter"
)

// Error is returned by Service operations. Msg is safe to show to users; Err
// carries the underlying cause, if any.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
