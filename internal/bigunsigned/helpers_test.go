package bigunsigned

import (
	"math/big"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
)

// randomDecimal returns an n-digit decimal string without a leading zero.
func randomDecimal(rng *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	sb.WriteByte(byte('1' + rng.IntN(9)))
	for i := 1; i < n; i++ {
		sb.WriteByte(byte('0' + rng.IntN(10)))
	}
	return sb.String()
}

func randomUint(rng *rand.Rand, n int) *Uint {
	return MustParse(randomDecimal(rng, n))
}

func toBig(t testing.TB, x *Uint) *big.Int {
	t.Helper()
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		t.Fatalf("math/big rejected %q", x.String())
	}
	return b
}

func assertEqualBig(t testing.TB, label string, got *Uint, want *big.Int) {
	t.Helper()
	if got.String() != want.String() {
		t.Fatalf("%s: got %d digits, want %d digits (values differ)", label, got.Len(), len(want.String()))
	}
}

// strategyRecorder captures dispatch decisions; it is safe for concurrent use.
type strategyRecorder struct {
	mu    sync.Mutex
	first Strategy
	calls int
	seen  map[Strategy]int
}

func newStrategyRecorder() *strategyRecorder {
	return &strategyRecorder{seen: make(map[Strategy]int)}
}

func (r *strategyRecorder) trace(s Strategy, _, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == 0 {
		r.first = s
	}
	r.calls++
	r.seen[s]++
}

func (r *strategyRecorder) options(o Options) Options {
	o.Trace = r.trace
	return o
}
