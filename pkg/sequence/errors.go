package sequence

import (
	"errors"

	"github.com/hashicorp-forge/hermes-oai/pkg/setspec"
)

// ErrStorageUnavailable indicates the backing store could not be queried.
var ErrStorageUnavailable = errors.New("sequence storage unavailable")

// Error describes a failed provider operation.
type Error struct {
	// Op is the provider operation (Count or Fetch).
	Op string

	// Kind is the kind of entity the provider serves, if known.
	Kind setspec.Kind

	// Err is the underlying error.
	Err error
}

func newError(op string, kind setspec.Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Error implements error.
func (e *Error) Error() string {
	if e.Kind == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
