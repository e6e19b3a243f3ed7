//go:build gmp

package calc

import (
	"context"
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bigunsigned"
)

func init() {
	optionalCalculators = append(optionalCalculators, NewGMPCalculator)
}

// GMPCalculator delegates to the GNU Multiple Precision library through
// cgo. Operands cross the boundary as decimal strings, so it serves as an
// independent reference for the native engine rather than a fast path.
type GMPCalculator struct{}

// NewGMPCalculator returns the "gmp" calculator.
func NewGMPCalculator() Calculator { return GMPCalculator{} }

func (GMPCalculator) Name() string { return "gmp" }

func (GMPCalculator) Compute(ctx context.Context, op Operation, x, y *bigunsigned.Uint, _ bigunsigned.Options) (*bigunsigned.Uint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gx, err := toGMP(x)
	if err != nil {
		return nil, err
	}
	gy, err := toGMP(y)
	if err != nil {
		return nil, err
	}

	z := new(gmp.Int)
	switch op {
	case OpAdd:
		z.Add(gx, gy)
	case OpSub:
		if gx.Cmp(gy) < 0 {
			// Reuse the native error so callers classify it the same way.
			return nil, x.Clone().SubAssign(y)
		}
		z.Sub(gx, gy)
	case OpMul:
		z.Mul(gx, gy)
	default:
		return nil, fmt.Errorf("gmp: unsupported operation %v", op)
	}
	return bigunsigned.Parse(z.String())
}

func toGMP(v *bigunsigned.Uint) (*gmp.Int, error) {
	z, ok := new(gmp.Int).SetString(v.String(), 10)
	if !ok {
		return nil, fmt.Errorf("gmp: cannot convert %d-digit operand", v.Len())
	}
	return z, nil
}
