package bigunsigned

import (
	"github.com/agbru/bigcalc/internal/digits"
	"github.com/agbru/bigcalc/internal/parallel"
)

// ─────────────────────────────────────────────────────────────────────────────
// Tiers 3 and 4: Karatsuba
// ─────────────────────────────────────────────────────────────────────────────
//
// With h = m/2, x = high1*10^h + low1 and y = high2*10^h + low2:
//
//	z0 = low1 * low2
//	z2 = high1 * high2
//	z1 = (low1 + high1) * (low2 + high2)
//	x*y = z2*10^(2h) + (z1 - z2 - z0)*10^h + z0
//
// Every sub-product has operands shorter than m whenever m > 9, so the
// recursion reaches the native tier.

func karatsubaSequential(x, y digits.Digits, m int, o *Options) digits.Digits {
	half := m / 2
	low1, high1 := x.Split(half)
	low2, high2 := y.Split(half)

	z0 := mulDigits(low1, low2, o)
	z1 := mulDigits(sum(low1, high1), sum(low2, high2), o)
	z2 := mulDigits(high1, high2, o)
	return combine(z0, z1, z2, half)
}

// karatsubaParallel spawns z0 and z2, builds both sums concurrently, then
// computes z1 in the calling goroutine. All tasks are joined before combining.
func karatsubaParallel(x, y digits.Digits, m int, o *Options) digits.Digits {
	half := m / 2
	low1, high1 := x.Split(half)
	low2, high2 := y.Split(half)

	var z0, z1, z2 digits.Digits
	products := parallel.NewGroup(o.Limiter)
	products.Go(func() { z0 = mulDigits(low1, low2, o) })
	products.Go(func() { z2 = mulDigits(high1, high2, o) })

	var sum1, sum2 digits.Digits
	sums := parallel.NewGroup(o.Limiter)
	sums.Go(func() { sum1 = sum(low1, high1) })
	sum2 = sum(low2, high2)
	join(sums)

	z1 = mulDigits(sum1, sum2, o)
	join(products)
	return combine(z0, z1, z2, half)
}

// combine assembles z2*10^(2h) + (z1 - (z2 + z0))*10^h + z0. It consumes z1
// and z2.
func combine(z0, z1, z2 digits.Digits, half int) digits.Digits {
	z3 := z1
	if err := subFrom(&z3, sum(z2, z0)); err != nil {
		panic(invariant("karatsuba middle term: %v", err))
	}
	z3.ShiftLeft(half)
	z2.ShiftLeft(2 * half)

	addTo(&z2, z3)
	addTo(&z2, z0)
	return z2
}

// join waits for g and re-raises a panic from any spawned task.
func join(g *parallel.Group) {
	if err := g.Wait(); err != nil {
		panic(err)
	}
}
