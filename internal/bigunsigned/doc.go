// Package bigunsigned implements arbitrary-precision unsigned decimal integers.
//
// A Uint owns a canonical digits.Digits sequence. Addition, subtraction,
// comparison and splitting work digit by digit with the combinators from the
// digits package. Multiplication dispatches by operand size to one of four
// strategies:
//
//  1. Native: both operands have at most 9 digits and the product is computed
//     in a uint64.
//  2. Repeated addition: the shorter operand has at most 5 digits and the
//     longer at most 8192; the longer operand is summed k times.
//  3. Parallel Karatsuba: the shorter operand has more than 9 digits and the
//     longer more than 8192; the three half-size products run concurrently.
//  4. Sequential Karatsuba: everything else.
//
// The thresholds are tunable through Options. The package never logs and never
// blocks on anything but its own spawned work.
package bigunsigned
