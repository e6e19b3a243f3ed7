package bigunsigned

import (
	"iter"
	"strconv"

	"github.com/agbru/bigcalc/internal/digits"
)

// Uint is an arbitrary-precision unsigned decimal integer. The zero value is
// zero. Values never share digit storage with each other.
type Uint struct {
	d digits.Digits
}

// New returns a new zero value.
func New() *Uint { return &Uint{d: digits.Zero()} }

// FromUint64 returns a Uint holding u.
func FromUint64(u uint64) *Uint { return &Uint{d: digits.FromUint64(u)} }

// FromInt64 converts i through its decimal text. Negative values fail with
// digits.ErrInvalidDigitCharacter because of the leading '-'.
func FromInt64(i int64) (*Uint, error) {
	return Parse(strconv.FormatInt(i, 10))
}

// Parse builds a Uint from decimal text, most significant digit first.
// Leading zeros are dropped.
func Parse(s string) (*Uint, error) {
	d, err := digits.Parse(s)
	if err != nil {
		return nil, err
	}
	return &Uint{d: d}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) *Uint {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

// FromChars builds a Uint from characters yielded most significant first.
func FromChars(seq iter.Seq[byte], sizeHint int) (*Uint, error) {
	d, err := digits.FromChars(seq, sizeHint)
	if err != nil {
		return nil, err
	}
	return &Uint{d: d}, nil
}

// wrap adopts d without copying. d must be canonical and unshared.
func wrap(d digits.Digits) *Uint { return &Uint{d: d} }

// view returns the digit sequence, substituting canonical zero for the zero
// value. The result must not be mutated.
func (x *Uint) view() digits.Digits {
	if len(x.d) == 0 {
		return digits.Zero()
	}
	return x.d
}

// Len returns the number of decimal digits. Zero has length 1.
func (x *Uint) Len() int { return len(x.view()) }

// IsZero reports whether x is zero.
func (x *Uint) IsZero() bool { return x.view().IsZero() }

// Clone returns a deep copy of x.
func (x *Uint) Clone() *Uint { return &Uint{d: x.view().Clone()} }

// Set sets z to a copy of x and returns z.
func (z *Uint) Set(x *Uint) *Uint {
	if z != x {
		z.d = x.view().Clone()
	}
	return z
}

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
// Shorter values are smaller; equal lengths compare from the most
// significant digit down.
func (x *Uint) Cmp(y *Uint) int { return digits.Compare(x.view(), y.view()) }

// Equal reports whether x and y hold the same value.
func (x *Uint) Equal(y *Uint) bool { return x.Cmp(y) == 0 }

// Less reports whether x < y.
func (x *Uint) Less(y *Uint) bool { return x.Cmp(y) < 0 }

// Digits yields the digits of x, most significant first.
func (x *Uint) Digits() iter.Seq[digits.Digit] { return x.view().MostSignificantFirst() }

// String returns the decimal representation of x.
func (x *Uint) String() string { return x.view().String() }

// Uint64 returns x as a uint64 and whether it fits.
func (x *Uint) Uint64() (uint64, bool) {
	d := x.view()
	if len(d) > 20 {
		return 0, false
	}
	const maxDiv10 = ^uint64(0) / 10
	var v uint64
	for i := len(d) - 1; i >= 0; i-- {
		if v > maxDiv10 {
			return 0, false
		}
		next := v*10 + uint64(d[i])
		if next < v*10 {
			return 0, false
		}
		v = next
	}
	return v, true
}

// Split returns low = x mod 10^at and high = x / 10^at. When at >= x.Len(),
// low is a copy of x and high is zero.
func (x *Uint) Split(at int) (low, high *Uint) {
	l, h := x.view().Split(at)
	return wrap(l), wrap(h)
}

// MulPow10 multiplies z by 10^k in place and returns z. Zero stays zero.
func (z *Uint) MulPow10(k int) *Uint {
	z.norm()
	z.d.ShiftLeft(k)
	return z
}

// norm replaces the empty zero value with canonical zero before mutation.
func (z *Uint) norm() {
	if len(z.d) == 0 {
		z.d = digits.Zero()
	}
}

// nativeValue reads at most DefaultNativeMaxDigits digits through the
// positional weight table.
func nativeValue(d digits.Digits) uint64 {
	var v uint64
	for i, x := range d {
		v += uint64(x) * weights[i]
	}
	return v
}
