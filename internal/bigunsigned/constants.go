package bigunsigned

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication Dispatch Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// All thresholds are measured in decimal digits. m is the length of the longer
// operand and n the length of the shorter one.

const (
	// DefaultNativeMaxDigits is the largest m handled by a single uint64
	// multiply. (10^9 - 1)^2 < 10^18 < 2^64, so 9 is also the hard ceiling.
	DefaultNativeMaxDigits = 9

	// DefaultSkewMaxDigits is the largest n for which repeated addition is
	// used. The shorter operand becomes the addition count, so at most
	// 99,999 additions of the longer operand.
	DefaultSkewMaxDigits = 5

	// DefaultSkewMaxLen is the largest m for which repeated addition is used.
	DefaultSkewMaxLen = 8192

	// DefaultParallelThreshold is the m above which Karatsuba runs its three
	// half-size products concurrently, provided n also exceeds
	// DefaultNativeMaxDigits. Below it, goroutine scheduling costs more than
	// the products it would overlap.
	DefaultParallelThreshold = 8192
)

// weights holds the positional values 10^0 .. 10^8 used to read at most
// DefaultNativeMaxDigits digits into a uint64.
var weights = [DefaultNativeMaxDigits]uint64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
}
