package bigunsigned

import "github.com/agbru/bigcalc/internal/digits"

// MulAssign multiplies z by y with default options and returns z.
func (z *Uint) MulAssign(y *Uint) *Uint {
	return z.Mul(z, y)
}

// Mul sets z to x * y with default options and returns z.
func (z *Uint) Mul(x, y *Uint) *Uint {
	return z.MulWith(x, y, Options{})
}

// MulWith sets z to x * y using the given dispatch options and returns z.
// The result does not depend on opts; only the work schedule does.
func (z *Uint) MulWith(x, y *Uint, opts Options) *Uint {
	o := opts.normalize()
	z.d = mulDigits(x.view(), y.view(), &o)
	return z
}

// mulDigits multiplies two canonical sequences and returns the product in
// fresh storage. o must be normalized.
func mulDigits(x, y digits.Digits, o *Options) digits.Digits {
	m, n := len(x), len(y)
	if m < n {
		m, n = n, m
	}
	s := o.selectStrategy(m, n)
	if o.Trace != nil {
		o.Trace(s, m, n)
	}

	switch s {
	case StrategyNative:
		return mulNative(x, y)
	case StrategyRepeatedAdd:
		return mulRepeatedAdd(x, y)
	case StrategyKaratsubaParallel:
		return karatsubaParallel(x, y, m, o)
	default:
		return karatsubaSequential(x, y, m, o)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Tier 1: Native
// ─────────────────────────────────────────────────────────────────────────────

func mulNative(x, y digits.Digits) digits.Digits {
	return digits.FromUint64(nativeValue(x) * nativeValue(y))
}

// ─────────────────────────────────────────────────────────────────────────────
// Tier 2: Repeated Addition
// ─────────────────────────────────────────────────────────────────────────────

// mulRepeatedAdd uses the shorter operand's value k as a count and sums the
// longer operand k times.
func mulRepeatedAdd(x, y digits.Digits) digits.Digits {
	short, long := x, y
	if len(short) > len(long) {
		short, long = long, short
	}
	k := nativeValue(short)
	if k == 0 {
		return digits.Zero()
	}

	acc := make(digits.Digits, len(long), len(long)+len(short)+1)
	copy(acc, long)
	for ; k > 1; k-- {
		addTo(&acc, long)
	}
	return acc
}
