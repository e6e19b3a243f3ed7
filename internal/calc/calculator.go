package calc

import (
	"context"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigunsigned"
)

// Calculator performs one arithmetic operation on two unsigned values.
//
// Implementations must not modify x or y, and must be safe for concurrent
// use. opts tunes the multiplication schedule and never changes a result.
type Calculator interface {
	// Name returns the registry key of the calculator.
	Name() string
	// Compute returns op(x, y). Subtraction fails with an error matching
	// bigunsigned.ErrNegativeResult when y > x.
	Compute(ctx context.Context, op Operation, x, y *bigunsigned.Uint, opts bigunsigned.Options) (*bigunsigned.Uint, error)
}

// mulFunc forms a product into fresh storage.
type mulFunc func(x, y *bigunsigned.Uint, opts bigunsigned.Options) *bigunsigned.Uint

// calculator adapts a multiplication algorithm to the Calculator interface.
type calculator struct {
	name string
	mul  mulFunc
}

func (c *calculator) Name() string { return c.name }

func (c *calculator) Compute(ctx context.Context, op Operation, x, y *bigunsigned.Uint, opts bigunsigned.Options) (*bigunsigned.Uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch op {
	case OpAdd:
		return bigunsigned.New().Add(x, y), nil
	case OpSub:
		return bigunsigned.New().Sub(x, y)
	case OpMul:
		return c.mul(x, y, opts), nil
	default:
		return nil, fmt.Errorf("%s: unsupported operation %v", c.name, op)
	}
}

// NewKaratsubaCalculator returns the adaptive engine: native, repeated
// addition, or Karatsuba run in parallel above the parallel threshold.
func NewKaratsubaCalculator() Calculator {
	return &calculator{
		name: "karatsuba",
		mul: func(x, y *bigunsigned.Uint, opts bigunsigned.Options) *bigunsigned.Uint {
			return bigunsigned.New().MulWith(x, y, opts)
		},
	}
}

// NewSequentialCalculator returns the adaptive engine with every Karatsuba
// step forced onto the calling goroutine.
func NewSequentialCalculator() Calculator {
	return &calculator{
		name: "sequential",
		mul: func(x, y *bigunsigned.Uint, opts bigunsigned.Options) *bigunsigned.Uint {
			opts.Sequential = true
			return bigunsigned.New().MulWith(x, y, opts)
		},
	}
}

// NewSchoolbookCalculator returns the quadratic long multiplication. It
// ignores opts.
func NewSchoolbookCalculator() Calculator {
	return &calculator{
		name: "schoolbook",
		mul: func(x, y *bigunsigned.Uint, _ bigunsigned.Options) *bigunsigned.Uint {
			return bigunsigned.Schoolbook(x, y)
		},
	}
}
