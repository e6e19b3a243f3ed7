package bigunsigned

import "github.com/agbru/bigcalc/internal/digits"

// addTo adds rhs into *dst. Neither operand needs spare capacity; *dst may
// be reallocated.
func addTo(dst *digits.Digits, rhs digits.Digits) {
	d := *dst
	n := max(len(d), len(rhs))
	d.Resize(n, 0)

	var c digits.Adder
	i := 0
	for ; i < len(rhs); i++ {
		d[i] = c.Step(d[i], rhs[i])
	}
	for ; i < n && c.HasCarry(); i++ {
		d[i] = c.Step(d[i], 0)
	}
	if c.HasCarry() {
		d.GrowHigh(1, 1)
	}
	*dst = d
}

// subFrom subtracts rhs from *dst in place. Both operands must be canonical.
// On failure *dst is left untouched.
func subFrom(dst *digits.Digits, rhs digits.Digits) error {
	d := *dst
	if digits.Compare(d, rhs) < 0 {
		return &NegativeResultError{MinuendLen: len(d), SubtrahendLen: len(rhs)}
	}

	var c digits.Subtractor
	i := 0
	for ; i < len(rhs); i++ {
		d[i] = c.Step(rhs[i], d[i])
	}
	for ; i < len(d) && c.HasBorrow(); i++ {
		d[i] = c.Step(0, d[i])
	}
	if c.HasBorrow() {
		panic(invariant("residual borrow after subtracting %d digits from %d", len(rhs), len(d)))
	}
	d.Prune()
	*dst = d
	return nil
}

// sum returns a + b in fresh storage.
func sum(a, b digits.Digits) digits.Digits {
	out := make(digits.Digits, len(a), max(len(a), len(b))+1)
	copy(out, a)
	addTo(&out, b)
	return out
}

// AddAssign adds y to z and returns z.
func (z *Uint) AddAssign(y *Uint) *Uint {
	z.norm()
	addTo(&z.d, y.view())
	return z
}

// SubAssign subtracts y from z. It fails with a *NegativeResultError, leaving
// z unchanged, when y > z.
func (z *Uint) SubAssign(y *Uint) error {
	z.norm()
	return subFrom(&z.d, y.view())
}

// Add sets z to x + y and returns z.
func (z *Uint) Add(x, y *Uint) *Uint {
	z.d = sum(x.view(), y.view())
	return z
}

// Sub sets z to x - y and returns z. When y > x it returns a
// *NegativeResultError and leaves z unchanged.
func (z *Uint) Sub(x, y *Uint) (*Uint, error) {
	d := x.view().Clone()
	if err := subFrom(&d, y.view()); err != nil {
		return nil, err
	}
	z.d = d
	return z, nil
}

// Inc adds one to z and returns z.
func (z *Uint) Inc() *Uint {
	z.norm()
	addTo(&z.d, digits.Digits{1})
	return z
}

// PostInc adds one to z and returns a copy of its previous value.
func (z *Uint) PostInc() *Uint {
	prev := z.Clone()
	z.Inc()
	return prev
}
