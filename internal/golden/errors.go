package golden

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("golden file not found")
	ErrParse     = errors.New("malformed golden file")
	ErrRetrieval = errors.New("baseline retrieval failed")
	ErrWrite     = errors.New("golden file write failed")
)

// Error carries the failing operation and path alongside one of the
// sentinel kinds above. errors.Is matches both the kind and the cause.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, op, path string, err error) error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

func parseErrorf(format string, args ...any) error {
	return &Error{Kind: ErrParse, Op: "parse", Err: fmt.Errorf(format, args...)}
}
