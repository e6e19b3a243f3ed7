package digits

// ─────────────────────────────────────────────────────────────────────────────
// Elementwise Combinators
// ─────────────────────────────────────────────────────────────────────────────

// Adder adds digit pairs with a carry kept between positions.
type Adder struct {
	carry Digit
}

// Step returns (a + b + carry) mod 10 and updates the carry.
func (c *Adder) Step(a, b Digit) Digit {
	x := a + b + c.carry
	if x >= Base {
		c.carry = 1
		return x - Base
	}
	c.carry = 0
	return x
}

// HasCarry reports whether the last step overflowed.
func (c *Adder) HasCarry() bool { return c.carry != 0 }

// Subtractor computes minuend - subtrahend with a borrow kept between
// positions.
type Subtractor struct {
	borrow Digit
}

// Step returns (minuend - borrow - subtrahend) mod 10 and updates the borrow.
// Digits are unsigned, so the underflow test is minuend < subtrahend + borrow.
func (c *Subtractor) Step(subtrahend, minuend Digit) Digit {
	need := subtrahend + c.borrow
	if minuend < need {
		c.borrow = 1
		return Base + minuend - need
	}
	c.borrow = 0
	return minuend - need
}

// HasBorrow reports whether the last step borrowed from the next position.
func (c *Subtractor) HasBorrow() bool { return c.borrow != 0 }

// Multiplier multiplies digit pairs with a carry in [0, 8].
type Multiplier struct {
	carry Digit
}

// Step returns (a*b + carry) mod 10 and keeps the quotient as the new carry.
func (c *Multiplier) Step(a, b Digit) Digit {
	x := a*b + c.carry
	c.carry = x / Base
	return x % Base
}

// Carry returns the pending carry digit.
func (c *Multiplier) Carry() Digit { return c.carry }

// HasCarry reports whether a carry is pending.
func (c *Multiplier) HasCarry() bool { return c.carry != 0 }
