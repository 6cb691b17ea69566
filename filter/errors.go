package filter

import (
	"errors"
	"fmt"
)

// ErrNotFilterable is returned when the value is neither an array nor an object
var ErrNotFilterable = errors.New("only JSON arrays and objects can be filtered")

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Column     int // -1 if the column is unknown
		Err        error
	}

	// EvaluationError indicates a filter failed on a specific row
	EvaluationError struct {
		Expression string
		Row        string
		Reason     string
		Err        error
	}
)

func (e *CompilationError) Error() string {
	if e.Column >= 0 {
		return fmt.Sprintf("compilation error at column %d in '%s': %s", e.Column, e.Expression, e.Reason)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation error for filter '%s' on row %s: %s", e.Expression, e.Row, e.Reason)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
