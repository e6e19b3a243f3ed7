package bigunsigned

import (
	"errors"
	"fmt"
)

// ErrNegativeResult is matched by every subtraction failure whose subtrahend
// exceeds the minuend.
var ErrNegativeResult = errors.New("negative result")

// NegativeResultError reports a subtraction that would go below zero. It
// carries the digit counts of both operands.
type NegativeResultError struct {
	MinuendLen    int
	SubtrahendLen int
}

func (e *NegativeResultError) Error() string {
	return fmt.Sprintf("size: %d < %d, %v", e.MinuendLen, e.SubtrahendLen, ErrNegativeResult)
}

// Is makes errors.Is(err, ErrNegativeResult) hold.
func (e *NegativeResultError) Is(target error) bool {
	return target == ErrNegativeResult
}

// errInvariant marks internal consistency failures. They are raised as
// panics, never returned.
var errInvariant = errors.New("bigunsigned: invariant violated")

func invariant(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvariant, fmt.Sprintf(format, args...))
}
