package bigunsigned

import "github.com/agbru/bigcalc/internal/parallel"

// Strategy identifies the multiplication algorithm chosen for one product.
type Strategy int

const (
	StrategyNative Strategy = iota
	StrategyRepeatedAdd
	StrategyKaratsubaParallel
	StrategyKaratsubaSequential
)

// Strategies lists every dispatch strategy in selection order.
var Strategies = []Strategy{
	StrategyNative,
	StrategyRepeatedAdd,
	StrategyKaratsubaParallel,
	StrategyKaratsubaSequential,
}

func (s Strategy) String() string {
	switch s {
	case StrategyNative:
		return "native"
	case StrategyRepeatedAdd:
		return "repeated-add"
	case StrategyKaratsubaParallel:
		return "karatsuba-parallel"
	case StrategyKaratsubaSequential:
		return "karatsuba-sequential"
	default:
		return "unknown"
	}
}

// Options tunes multiplication dispatch. Zero fields take the package
// defaults, so the zero value reproduces the standard behavior.
type Options struct {
	// NativeMaxDigits bounds m for the uint64 path. Clamped to [1, 9].
	NativeMaxDigits int
	// SkewMaxDigits bounds n for repeated addition. Clamped to NativeMaxDigits.
	SkewMaxDigits int
	// SkewMaxLen bounds m for repeated addition.
	SkewMaxLen int
	// ParallelThreshold is the m above which Karatsuba runs concurrently.
	ParallelThreshold int
	// Sequential demotes every parallel Karatsuba step to the sequential form.
	Sequential bool
	// Limiter bounds live spawned tasks. nil uses parallel.DefaultLimiter.
	Limiter *parallel.Limiter
	// Trace, when set, is called once per dispatch decision, recursive steps
	// included, possibly from several goroutines at once.
	Trace func(s Strategy, m, n int)
}

func (o Options) normalize() Options {
	if o.NativeMaxDigits <= 0 || o.NativeMaxDigits > DefaultNativeMaxDigits {
		o.NativeMaxDigits = DefaultNativeMaxDigits
	}
	if o.SkewMaxDigits <= 0 {
		o.SkewMaxDigits = DefaultSkewMaxDigits
	}
	o.SkewMaxDigits = min(o.SkewMaxDigits, o.NativeMaxDigits)
	if o.SkewMaxLen <= 0 {
		o.SkewMaxLen = DefaultSkewMaxLen
	}
	if o.ParallelThreshold <= 0 {
		o.ParallelThreshold = DefaultParallelThreshold
	}
	if o.Limiter == nil {
		o.Limiter = parallel.DefaultLimiter()
	}
	return o
}

// SelectStrategy returns the strategy used for operands of lengths a and b.
// The rules are evaluated in order and the first match wins.
func SelectStrategy(a, b int, opts Options) Strategy {
	o := opts.normalize()
	return o.selectStrategy(max(a, b), min(a, b))
}

func (o *Options) selectStrategy(m, n int) Strategy {
	switch {
	case m <= o.NativeMaxDigits:
		return StrategyNative
	case m <= o.SkewMaxLen && n <= o.SkewMaxDigits:
		return StrategyRepeatedAdd
	case n > o.NativeMaxDigits && m > o.ParallelThreshold && !o.Sequential:
		return StrategyKaratsubaParallel
	default:
		return StrategyKaratsubaSequential
	}
}
