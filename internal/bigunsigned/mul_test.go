package bigunsigned

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/agbru/bigcalc/internal/parallel"
)

func TestSelectStrategy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b int
		opts Options
		want Strategy
	}{
		{"single digits", 1, 1, Options{}, StrategyNative},
		{"nine by nine", 9, 9, Options{}, StrategyNative},
		{"nine by one", 1, 9, Options{}, StrategyNative},
		{"ten by one", 10, 1, Options{}, StrategyRepeatedAdd},
		{"ten by five", 10, 5, Options{}, StrategyRepeatedAdd},
		{"ten by six", 10, 6, Options{}, StrategyKaratsubaSequential},
		{"8192 by five", 8192, 5, Options{}, StrategyRepeatedAdd},
		{"8192 by six", 8192, 6, Options{}, StrategyKaratsubaSequential},
		{"8193 by five", 8193, 5, Options{}, StrategyKaratsubaSequential},
		{"8192 by 8192", 8192, 8192, Options{}, StrategyKaratsubaSequential},
		{"8193 by ten", 8193, 10, Options{}, StrategyKaratsubaParallel},
		{"8193 by nine", 8193, 9, Options{}, StrategyKaratsubaSequential},
		{"8193 by 8193", 8193, 8193, Options{}, StrategyKaratsubaParallel},
		{"operand order ignored", 10, 8193, Options{}, StrategyKaratsubaParallel},
		{"sequential option", 8193, 8193, Options{Sequential: true}, StrategyKaratsubaSequential},
		{"custom parallel threshold", 100, 100, Options{ParallelThreshold: 50}, StrategyKaratsubaParallel},
		{"custom skew digits", 100, 3, Options{SkewMaxDigits: 2}, StrategyKaratsubaSequential},
		{"native clamp", 12, 12, Options{NativeMaxDigits: 30}, StrategyKaratsubaSequential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SelectStrategy(tt.a, tt.b, tt.opts); got != tt.want {
				t.Errorf("SelectStrategy(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStrategyString(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for _, s := range Strategies {
		name := s.String()
		if name == "unknown" || seen[name] {
			t.Errorf("Strategy %d has name %q", s, name)
		}
		seen[name] = true
	}
	if Strategy(99).String() != "unknown" {
		t.Error("out-of-range strategy should be unknown")
	}
}

func TestMulConcreteScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a, b     string
		want     string
		strategy Strategy
	}{
		{"native nines", "999999999", "999999999", "999999998000000001", StrategyNative},
		{"repeated add", "5", "123456789123456789123456789", "617283945617283945617283945", StrategyRepeatedAdd},
		{"zero times long", "0", "123456789123456789123456789", "0", StrategyRepeatedAdd},
		{"zero times zero", "0", "0", "0", StrategyNative},
		{"one is identity", "1", "98765432109876543210", "98765432109876543210", StrategyRepeatedAdd},
		{"balanced karatsuba", "123456789012", "987654321098", "121932631136585886175176", StrategyKaratsubaSequential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := newStrategyRecorder()
			got := New().MulWith(MustParse(tt.a), MustParse(tt.b), rec.options(Options{}))
			if got.String() != tt.want {
				t.Errorf("%s * %s = %s, want %s", tt.a, tt.b, got, tt.want)
			}
			if rec.first != tt.strategy {
				t.Errorf("top-level strategy = %v, want %v", rec.first, tt.strategy)
			}
			if s := Schoolbook(MustParse(tt.a), MustParse(tt.b)); s.String() != tt.want {
				t.Errorf("Schoolbook = %s, want %s", s, tt.want)
			}
		})
	}
}

// TestStrategyEquivalenceAtBoundaries multiplies operands on both sides of
// every dispatch boundary and compares against the schoolbook product and
// math/big.
func TestStrategyEquivalenceAtBoundaries(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(42, 1))
	sizes := []struct {
		a, b int
		want Strategy
	}{
		{1, 1, StrategyNative},
		{9, 9, StrategyNative},
		{9, 1, StrategyNative},
		{10, 10, StrategyKaratsubaSequential},
		{10, 5, StrategyRepeatedAdd},
		{10, 6, StrategyKaratsubaSequential},
		{400, 5, StrategyRepeatedAdd},
		{400, 6, StrategyKaratsubaSequential},
		{8192, 3, StrategyRepeatedAdd},
		{8193, 3, StrategyKaratsubaSequential},
		{8193, 9, StrategyKaratsubaSequential},
		{8193, 10, StrategyKaratsubaParallel},
	}

	for _, sz := range sizes {
		x := randomUint(rng, sz.a)
		y := randomUint(rng, sz.b)
		rec := newStrategyRecorder()
		got := New().MulWith(x, y, rec.options(Options{}))
		if rec.first != sz.want {
			t.Errorf("%dx%d dispatched to %v, want %v", sz.a, sz.b, rec.first, sz.want)
		}
		want := Schoolbook(x, y)
		if !got.Equal(want) {
			t.Errorf("%dx%d: dispatching product differs from schoolbook", sz.a, sz.b)
		}
		assertEqualBig(t, "math/big", got, new(big.Int).Mul(toBig(t, x), toBig(t, y)))
	}
}

// TestSkewBoundaryFiveVersusSix pins the switch between repeated addition and
// sequential Karatsuba when the shorter operand grows from five to six digits.
func TestSkewBoundaryFiveVersusSix(t *testing.T) {
	t.Parallel()
	long := MustParse(strings.Repeat("9", 1000))
	for _, tc := range []struct {
		short string
		want  Strategy
	}{
		{"99999", StrategyRepeatedAdd},
		{"10000", StrategyRepeatedAdd},
		{"100000", StrategyKaratsubaSequential},
		{"999999", StrategyKaratsubaSequential},
	} {
		rec := newStrategyRecorder()
		got := New().MulWith(long, MustParse(tc.short), rec.options(Options{}))
		if rec.first != tc.want {
			t.Errorf("short=%s dispatched to %v, want %v", tc.short, rec.first, tc.want)
		}
		assertEqualBig(t, "short="+tc.short, got,
			new(big.Int).Mul(toBig(t, long), toBig(t, MustParse(tc.short))))
	}
}

func TestSkewAtMaxLength(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 8192-digit repeated addition in short mode")
	}
	t.Parallel()
	rng := rand.New(rand.NewPCG(5, 8192))
	long := randomUint(rng, 8192)
	short := MustParse("12345")
	rec := newStrategyRecorder()
	got := New().MulWith(short, long, rec.options(Options{}))
	if rec.first != StrategyRepeatedAdd {
		t.Fatalf("dispatched to %v, want repeated-add", rec.first)
	}
	assertEqualBig(t, "5x8192", got, new(big.Int).Mul(toBig(t, short), toBig(t, long)))
}

// TestParallelMatchesSequential forces the parallel tier on 10000-digit
// operands and compares with the product computed with concurrency disabled.
func TestParallelMatchesSequential(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 10000-digit products in short mode")
	}
	t.Parallel()
	rng := rand.New(rand.NewPCG(10000, 10000))
	x := randomUint(rng, 10000)
	y := randomUint(rng, 10000)

	rec := newStrategyRecorder()
	par := New().MulWith(x, y, rec.options(Options{Limiter: parallel.NewLimiter(0)}))
	if rec.first != StrategyKaratsubaParallel {
		t.Fatalf("top-level strategy = %v, want karatsuba-parallel", rec.first)
	}

	seqRec := newStrategyRecorder()
	seq := New().MulWith(x, y, seqRec.options(Options{Sequential: true}))
	if seqRec.seen[StrategyKaratsubaParallel] != 0 {
		t.Fatalf("sequential run used the parallel tier %d times", seqRec.seen[StrategyKaratsubaParallel])
	}

	if !par.Equal(seq) {
		t.Fatal("parallel and sequential products differ")
	}
	assertEqualBig(t, "math/big", par, new(big.Int).Mul(toBig(t, x), toBig(t, y)))
}

// TestParallelWithSaturatedLimiter runs the parallel tier with a single task
// slot so most spawns fall back to inline execution.
func TestParallelWithSaturatedLimiter(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 1))
	x := randomUint(rng, 700)
	y := randomUint(rng, 650)
	opts := Options{ParallelThreshold: 64, Limiter: parallel.NewLimiter(1)}
	got := New().MulWith(x, y, opts)
	assertEqualBig(t, "limited", got, new(big.Int).Mul(toBig(t, x), toBig(t, y)))
}

// TestRaggedSplit covers operands whose length is at or below the split
// point m/2, so one half of the shorter operand is zero. The combine step must
// never see a negative middle term.
func TestRaggedSplit(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(99, 7))
	for _, sz := range [][2]int{
		{20, 10}, {20, 9}, {21, 10}, {40, 7}, {101, 50}, {101, 51}, {300, 12}, {1000, 500}, {9000, 4500},
	} {
		for _, opts := range []Options{{}, {ParallelThreshold: 16}} {
			x := randomUint(rng, sz[0])
			y := randomUint(rng, sz[1])
			var got *Uint
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("%dx%d panicked: %v", sz[0], sz[1], r)
					}
				}()
				got = New().MulWith(x, y, opts)
			}()
			assertEqualBig(t, "ragged", got, new(big.Int).Mul(toBig(t, x), toBig(t, y)))
		}
	}
}

// TestKaratsubaIdentity checks the three-product decomposition directly for
// arbitrary split points.
func TestKaratsubaIdentity(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(2024, 6))
	for range 30 {
		x := randomUint(rng, 20+rng.IntN(400))
		y := randomUint(rng, 20+rng.IntN(400))
		k := 1 + rng.IntN(max(x.Len(), y.Len()))

		low1, high1 := x.Split(k)
		low2, high2 := y.Split(k)
		z0 := New().Mul(low1, low2)
		z2 := New().Mul(high1, high2)
		z1 := New().Mul(New().Add(low1, high1), New().Add(low2, high2))
		mid, err := New().Sub(z1, New().Add(z2, z0))
		if err != nil {
			t.Fatalf("middle term negative at k=%d: %v", k, err)
		}
		got := New().Add(New().Add(z2.Clone().MulPow10(2*k), mid.MulPow10(k)), z0)
		if !got.Equal(New().Mul(x, y)) {
			t.Fatalf("identity fails for %dx%d split at %d", x.Len(), y.Len(), k)
		}
	}
}

func TestMulIdentityAndZero(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(4, 4))
	one, zero := FromUint64(1), New()
	for _, n := range []int{1, 5, 9, 10, 50, 500, 9000} {
		a := randomUint(rng, n)
		if got := New().Mul(a, one); !got.Equal(a) {
			t.Errorf("%d digits: a*1 != a", n)
		}
		if got := New().Mul(one, a); !got.Equal(a) {
			t.Errorf("%d digits: 1*a != a", n)
		}
		if got := New().Mul(a, zero); !got.IsZero() || got.Len() != 1 {
			t.Errorf("%d digits: a*0 = %s", n, got)
		}
	}
}

func TestMulAssign(t *testing.T) {
	t.Parallel()
	x := MustParse("111111111")
	x.MulAssign(MustParse("111111111"))
	if x.String() != "12345678987654321" {
		t.Errorf("MulAssign = %s", x)
	}
}

func BenchmarkMul(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{9, 100, 1000, 10000} {
		x := randomUint(rng, n)
		y := randomUint(rng, n)
		b.Run(fmt.Sprintf("digits=%d", n), func(b *testing.B) {
			z := New()
			for b.Loop() {
				z.Mul(x, y)
			}
		})
	}
}
