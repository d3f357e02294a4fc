package property

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCell          = errors.New("invalid property cell")
	ErrRejectedValue        = errors.New("value rejected")
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// RejectedValueError reports a validator refusal. The cell keeps its
// previous value.
type RejectedValueError struct {
	Property string
	Value    any
	Err      error
}

func (e *RejectedValueError) Error() string {
	return fmt.Sprintf("%s: property %s: %v: %v", ErrRejectedValue, e.Property, e.Value, e.Err)
}

func (e *RejectedValueError) Is(target error) bool { return target == ErrRejectedValue }

func (e *RejectedValueError) Unwrap() error { return e.Err }

// UnsupportedOperationError reports a write on a read-only interceptor.
type UnsupportedOperationError struct {
	Property string
	Kind     Kind
	Reason   string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: write to %s property %s: %s", ErrUnsupportedOperation, e.Kind, e.Property, e.Reason)
}

func (e *UnsupportedOperationError) Is(target error) bool { return target == ErrUnsupportedOperation }
