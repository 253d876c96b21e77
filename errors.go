package dataframe

import (
	"errors"
	"fmt"
)

// Error categories. Every failure the translation layer detects wraps one
// of these, so callers can match with errors.Is regardless of the message.
var (
	// ErrTypeMismatch is returned when an argument has the wrong kind,
	// e.g. a non-expression where a column expression is required.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidArgument is returned for structurally invalid arguments:
	// an empty required list, a non-bool ascending parameter, and so on.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownColumn is returned when a name-based lookup fails in a
	// read context (select, filter, explicit column access).
	ErrUnknownColumn = errors.New("unknown column")
	// ErrSchemaMismatch is returned by union-by-name without padding when
	// the two sides' column sets differ.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrColumnCountMismatch is returned by positional operations (union,
	// full rename) when the arity does not match.
	ErrColumnCountMismatch = errors.New("column count mismatch")
	// ErrInvalidJoinCondition is returned when a join condition mixes
	// column names and expressions in one call.
	ErrInvalidJoinCondition = errors.New("invalid join condition")
)

// ErrInvalidOrdinal is returned for ordinal 0: zero is not a valid 1-based
// position and carries no signed-descending meaning. Matches
// ErrInvalidArgument as well.
var ErrInvalidOrdinal = fmt.Errorf("%w: ordinal is 1-based and must be non-zero", ErrInvalidArgument)

// UnknownColumnError reports a failed name-based column lookup.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Name)
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }

// ColumnCountMismatchError reports a positional arity mismatch.
type ColumnCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("column count mismatch: expected %d columns, got %d", e.Expected, e.Actual)
}

func (e *ColumnCountMismatchError) Unwrap() error { return ErrColumnCountMismatch }

func typeMismatch(arg string, got any) error {
	return fmt.Errorf("%w: argument %s has unsupported type %T", ErrTypeMismatch, arg, got)
}
