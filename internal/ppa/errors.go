package ppa

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMismatch reports a source range that does not have the
	// expected column layout.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrDateParse reports an execution date that cannot be read.
	ErrDateParse = errors.New("date parse error")
)

// SchemaMismatchError describes a load-time column-shape violation.
type SchemaMismatchError struct {
	Sheet  string
	Range  string
	Cell   string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("schema mismatch in %s!%s at %s: %s", e.Sheet, e.Range, e.Cell, e.Reason)
	}
	return fmt.Sprintf("schema mismatch in %s!%s: %s", e.Sheet, e.Range, e.Reason)
}

// Is lets errors.Is match ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// DateParseError identifies the record whose execution date could not be
// coerced.
type DateParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("row %d: cannot parse execution date %q: %v", e.Row, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: cannot parse execution date %q", e.Row, e.Value)
}

func (e *DateParseError) Is(target error) bool {
	return target == ErrDateParse
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
