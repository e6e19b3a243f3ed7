// Package digits provides the decimal digit store underlying bigcalc values.
//
// A Digits value is a slice of base-10 digits stored least significant first.
// In canonical form it carries no most-significant zero, and zero itself is
// exactly one digit, [0]. Every mutating operation that can break that form
// ends by calling Prune.
//
// The package also provides the elementwise combinators (Adder, Subtractor,
// Multiplier) that carry state from one digit position to the next during a
// single left-to-right traversal. They are small value types: declare a fresh
// zero value for each traversal.
package digits
