package ifs

import (
	"errors"
	"fmt"
)

// Table validation errors.
var (
	// ErrEmptyTable indicates a transform table without entries.
	ErrEmptyTable = errors.New("ifs: transform table is empty")

	// ErrProbabilitySum indicates selection probabilities that are negative
	// or do not add up to one.
	ErrProbabilitySum = errors.New("ifs: transform probabilities must be non-negative and sum to 1")
)

// TableError wraps a validation error with the offending transform index.
// Index is -1 when the error concerns the table as a whole.
type TableError struct {
	Index   int
	Wrapped error
}

func (e *TableError) Error() string {
	if e.Index < 0 {
		return e.Wrapped.Error()
	}
	return fmt.Sprintf("%v (transform %d)", e.Wrapped, e.Index)
}

func (e *TableError) Unwrap() error {
	return e.Wrapped
}
