package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a referenced entity is absent or not owned by
// the caller. The two cases are deliberately indistinguishable so that
// existence of other users' records never leaks.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed required field, detected
// before any store access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// UpstreamError wraps a backing-store or aggregation failure.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
