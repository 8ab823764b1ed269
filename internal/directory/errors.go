package directory

import (
	"errors"
	"fmt"
)

var errMissingID = errors.New("echo carries no device id")

// TransportError means a request was sent and either the network failed or
// the directory answered with a non-success status. Any non-2xx status is
// treated uniformly; there is no per-code branching.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "directory request failed"
	}
	if e.Status != 0 {
		return fmt.Sprintf("directory %s failed: HTTP %d", e.Op, e.Status)
	}
	return fmt.Sprintf("directory %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MalformedResponseError means the directory returned a success status but
// a body that did not decode as the expected shape. The caller's last
// known good state must be left untouched.
type MalformedResponseError struct {
	Op  string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e == nil {
		return "directory response malformed"
	}
	return fmt.Sprintf("directory %s returned a malformed body: %v", e.Op, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
