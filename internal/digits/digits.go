package digits

import (
	"iter"
	"slices"
	"strings"
)

// Base is the radix of every digit sequence.
const Base = 10

// Digit is a single decimal digit in [0, 9].
//
// 9*9 plus a carry of 8 is 89, so single-digit products never overflow.
type Digit uint8

// Char returns the ASCII character for d.
func (d Digit) Char() byte { return '0' + byte(d) }

// Digits is a decimal digit sequence, least significant digit first.
type Digits []Digit

// Zero returns the canonical representation of zero.
func Zero() Digits { return Digits{0} }

// FromUint64 expands u into a canonical digit sequence.
func FromUint64(u uint64) Digits {
	if u == 0 {
		return Zero()
	}
	d := make(Digits, 0, 20)
	for u > 0 {
		d = append(d, Digit(u%Base))
		u /= Base
	}
	return d
}

// Clone returns a copy of d that shares no storage with it.
func (d Digits) Clone() Digits {
	if len(d) == 0 {
		return Zero()
	}
	return slices.Clone(d)
}

// IsZero reports whether d represents zero.
func (d Digits) IsZero() bool {
	for _, x := range d {
		if x != 0 {
			return false
		}
	}
	return true
}

// Prune removes most-significant zeros. An empty result becomes [0].
func (d *Digits) Prune() {
	s := *d
	n := len(s)
	for n > 0 && s[n-1] == 0 {
		n--
	}
	if n == 0 {
		*d = append(s[:0], 0)
		return
	}
	*d = s[:n]
}

// GrowHigh appends count copies of digit at the most-significant end.
func (d *Digits) GrowHigh(digit Digit, count int) {
	if count <= 0 {
		return
	}
	s := slices.Grow(*d, count)
	for range count {
		s = append(s, digit)
	}
	*d = s
}

// ShiftLeft multiplies the value by 10^count by inserting zeros at the
// least-significant end. Zero stays [0].
func (d *Digits) ShiftLeft(count int) {
	if count <= 0 {
		return
	}
	if d.IsZero() {
		*d = append((*d)[:0], 0)
		return
	}
	shifted := make(Digits, count+len(*d))
	copy(shifted[count:], *d)
	*d = shifted
	d.Prune()
}

// Resize grows or truncates d to exactly n digits. New most-significant
// positions are set to fill.
func (d *Digits) Resize(n int, fill Digit) {
	if n < 0 {
		n = 0
	}
	if n <= len(*d) {
		*d = (*d)[:n]
		return
	}
	d.GrowHigh(fill, n-len(*d))
}

// Split divides d at position at. low holds positions [0, at) and high holds
// [at, len). Both are pruned and own their storage. When at >= len(d), low is
// a copy of d and high is zero.
func (d Digits) Split(at int) (low, high Digits) {
	if at >= len(d) {
		return d.Clone(), Zero()
	}
	if at <= 0 {
		return Zero(), d.Clone()
	}
	low = slices.Clone(d[:at])
	low.Prune()
	high = slices.Clone(d[at:])
	high.Prune()
	return low, high
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to,
// or greater than b. Both sequences must be canonical.
func Compare(a, b Digits) int {
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// MostSignificantFirst yields the digits of d from the most significant down.
func (d Digits) MostSignificantFirst() iter.Seq[Digit] {
	return func(yield func(Digit) bool) {
		for i := len(d) - 1; i >= 0; i-- {
			if !yield(d[i]) {
				return
			}
		}
	}
}

// String formats d as decimal text, most significant digit first.
func (d Digits) String() string {
	if len(d) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(d))
	for x := range d.MostSignificantFirst() {
		sb.WriteByte(x.Char())
	}
	return sb.String()
}
