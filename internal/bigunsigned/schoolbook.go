package bigunsigned

import "github.com/agbru/bigcalc/internal/digits"

// Schoolbook returns x * y computed row by row: each digit of y scales x with
// a Multiplier, the row is shifted to its position and accumulated. It is
// quadratic and serves as a reference for the dispatching multiplier.
func Schoolbook(x, y *Uint) *Uint {
	return wrap(schoolbook(x.view(), y.view()))
}

func schoolbook(x, y digits.Digits) digits.Digits {
	acc := digits.Zero()
	row := digits.Acquire(len(x) + len(y) + 1)
	defer digits.Release(row)

	for i, d2 := range y {
		if d2 == 0 {
			continue
		}
		r := row[:i+len(x)]
		clear(r[:i])

		var f digits.Multiplier
		for j, d1 := range x {
			r[i+j] = f.Step(d1, d2)
		}
		if f.HasCarry() {
			r = append(r, f.Carry())
		}
		r.Prune()
		addTo(&acc, r)
	}
	return acc
}
