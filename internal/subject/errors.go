package subject

import "fmt"

// ColumnError carries the full source position of a failed cell so a row can
// be diagnosed in the original file. It wraps the underlying cause and is
// always propagated to the orchestrator, never swallowed.
type ColumnError struct {
	Filename string
	Line     int
	Column   string
	Cause    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v in file %s on line %d in column %s", e.Cause, e.Filename, e.Line, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return e.Cause
}

// CastError indicates a cell value incompatible with the declared backend
// type of its attribute.
type CastError struct {
	BackendType string
	Value       string
	Cause       error
}

func (e *CastError) Error() string {
	return fmt.Sprintf("can't cast value %q to backend type %s", e.Value, e.BackendType)
}

func (e *CastError) Unwrap() error {
	return e.Cause
}
