package keyset

import (
	"errors"
	"fmt"
)

// ErrMissingFields is returned when WithFields is not given or is given no fields.
var ErrMissingFields = errors.New("keyset: fields option is required and must not be empty")

// ErrCursorCorrupt is returned when a cursor fails to base64- or
// binary-decode, or its decoded length disagrees with len(fields).
var ErrCursorCorrupt = errors.New("keyset: cursor is corrupt")

// UnknownBindingError is raised when a Field references a join alias the
// query doesn't declare.
type UnknownBindingError struct {
	Name   string
	Known  []string
	Closest string
}

func (e *UnknownBindingError) Error() string {
	if e.Closest != "" {
		return fmt.Sprintf("keyset: unknown binding %q, known bindings: %v (did you mean %q?)", e.Name, e.Known, e.Closest)
	}
	return fmt.Sprintf("keyset: unknown binding %q, known bindings: %v", e.Name, e.Known)
}

// InvalidDirectionError is raised when a Field's direction is neither Asc
// nor Desc.
type InvalidDirectionError struct {
	Value string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("keyset: invalid direction %q", e.Value)
}

// ExecutorError wraps a failure surfaced by the executor (the SQL engine
// collaborator) without altering it. errors.Unwrap exposes the original.
type ExecutorError struct {
	Op  string
	Err error
}

func (e *ExecutorError) Error() string {
	return fmt.Sprintf("keyset: executor error during %s: %v", e.Op, e.Err)
}

func (e *ExecutorError) Unwrap() error {
	return e.Err
}
