package bitstr

import (
	"errors"
	"fmt"
)

var (
	ErrRange        = errors.New("out of range")
	ErrPrecondition = errors.New("precondition violated")
)

// RangeError reports a value whose magnitude does not fit in Width bits.
type RangeError struct {
	Value string
	Width int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s does not fit in %d bit(s): %v", e.Value, e.Width, ErrRange)
}

func (e *RangeError) Unwrap() error {
	return ErrRange
}

// PreconditionError reports malformed input handed to a conversion.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, ErrPrecondition)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

func precondition(op string, format string, args ...any) error {
	return &PreconditionError{
		Op:     op,
		Reason: fmt.Sprintf(format, args...),
	}
}
