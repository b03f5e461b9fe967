// Package stageerr defines the failure kinds of staging operations.
//
// Every precondition failure is reported as an *Error whose Kind is one of the
// sentinels below, so callers match with errors.Is regardless of the path or
// underlying I/O cause.
package stageerr

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists         = errors.New("staging directory already exists")
	ErrConfigurationNotFound = errors.New("configuration build directory not found")
	ErrArtifactNotFound      = errors.New("artifact not found")
	ErrStagingNotInitialized = errors.New("staging directory not initialized")
	ErrNotPopulated          = errors.New("module not populated")
	ErrNotFound              = errors.New("staging directory not found")
	ErrPostProcess           = errors.New("post-processing failed")
	ErrDestinationMissing    = errors.New("destination missing")
)

// Error is a staging failure tied to an operation and a filesystem path.
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
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an *Error without an underlying cause.
func New(op string, kind error, path string) error {
	return &Error{Kind: kind, Op: op, Path: path}
}

// Wrap returns an *Error carrying cause.
func Wrap(op string, kind error, path string, cause error) error {
	return &Error{Kind: kind, Op: op, Path: path, Err: cause}
}

// KindOf returns the sentinel kind of err, or nil if err is not a staging error.
func KindOf(err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return nil
}
