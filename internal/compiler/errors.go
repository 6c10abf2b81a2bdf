package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned for values of the wrong shape.
	ErrSyntax = errors.New("invalid syntax")
	// ErrUnknownOperator is returned for an operator name not in the registry.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrUnknownStrategy is returned for a strategy that is neither named nor a preset.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrNoTextSource is returned when textFrom is used without a text source.
	ErrNoTextSource = errors.New("textFrom requires a text source")
)

// itemError locates an error at one element of a list.
type itemError struct {
	Index int
	Err   error
}

func (e *itemError) Error() string { return fmt.Sprintf("[%d]: %v", e.Index, e.Err) }

func (e *itemError) Unwrap() error { return e.Err }

// within prefixes err with the field it came from, as "exclude[1]: ..." for
// list elements and "exclude: ..." otherwise.
func within(field string, err error) error {
	if _, ok := err.(*itemError); ok {
		return fmt.Errorf("%s%w", field, err)
	}
	return fmt.Errorf("%s: %w", field, err)
}
