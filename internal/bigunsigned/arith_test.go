package bigunsigned

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"testing"
)

func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b, want string
	}{
		{"123", "877", "1000"},
		{"0", "0", "0"},
		{"0", "55", "55"},
		{"999999999999", "1", "1000000000000"},
		{"1", "999999999999", "1000000000000"},
		{"500", "500", "1000"},
		{"12345678901234567890", "98765432109876543210", "111111111011111111100"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"+"+tt.b, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)
			if got := New().Add(a, b).String(); got != tt.want {
				t.Errorf("Add = %s, want %s", got, tt.want)
			}
			if got := a.Clone().AddAssign(b).String(); got != tt.want {
				t.Errorf("AddAssign = %s, want %s", got, tt.want)
			}
			if a.String() != MustParse(tt.a).String() || b.String() != MustParse(tt.b).String() {
				t.Error("Add modified its operands")
			}
		})
	}
}

func TestSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b, want string
	}{
		{"1000", "1", "999"},
		{"0", "0", "0"},
		{"55", "55", "0"},
		{"100000000000", "99999999999", "1"},
		{"111111111011111111100", "98765432109876543210", "12345678901234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.a+"-"+tt.b, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)
			got, err := New().Sub(a, b)
			if err != nil {
				t.Fatalf("Sub: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Sub = %s, want %s", got, tt.want)
			}
			z := a.Clone()
			if err := z.SubAssign(b); err != nil {
				t.Fatalf("SubAssign: %v", err)
			}
			if z.String() != tt.want {
				t.Errorf("SubAssign = %s, want %s", z, tt.want)
			}
		})
	}
}

func TestSubNegativeResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
	}{
		{"0", "1"},
		{"999", "1000"},
		{"123", "124"},
	}

	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		z := MustParse("77")
		if _, err := z.Sub(a, b); !errors.Is(err, ErrNegativeResult) {
			t.Errorf("Sub(%s, %s) error = %v, want ErrNegativeResult", tt.a, tt.b, err)
		}
		if z.String() != "77" {
			t.Errorf("failed Sub modified the receiver: %s", z)
		}

		err := a.SubAssign(b)
		var neg *NegativeResultError
		if !errors.As(err, &neg) {
			t.Fatalf("SubAssign(%s, %s) error = %v, want *NegativeResultError", tt.a, tt.b, err)
		}
		if neg.MinuendLen != len(tt.a) || neg.SubtrahendLen != len(tt.b) {
			t.Errorf("NegativeResultError lengths = (%d, %d)", neg.MinuendLen, neg.SubtrahendLen)
		}
		if a.String() != tt.a {
			t.Errorf("failed SubAssign modified the receiver: %s", a)
		}
	}
}

func TestNegativeResultMessage(t *testing.T) {
	t.Parallel()
	err := MustParse("12").SubAssign(MustParse("12345"))
	if err == nil || err.Error() != "size: 2 < 5, negative result" {
		t.Errorf("error message = %v", err)
	}
}

func TestIncAndPostInc(t *testing.T) {
	t.Parallel()
	x := MustParse("99")
	if got := x.Inc().String(); got != "100" {
		t.Errorf("Inc = %s, want 100", got)
	}
	prev := x.PostInc()
	if prev.String() != "100" || x.String() != "101" {
		t.Errorf("PostInc returned %s, value now %s", prev, x)
	}
}

func TestAliasedOperands(t *testing.T) {
	t.Parallel()
	x := MustParse("987654321987654321")
	x.Add(x, x)
	if x.String() != "1975308643975308642" {
		t.Errorf("x.Add(x, x) = %s", x)
	}
	y := MustParse("5555")
	y.AddAssign(y)
	if y.String() != "11110" {
		t.Errorf("y.AddAssign(y) = %s", y)
	}
	if _, err := y.Sub(y, y); err != nil || !y.IsZero() {
		t.Errorf("y.Sub(y, y) = %s, %v", y, err)
	}
	z := MustParse("123456789012")
	z.Mul(z, z)
	if z.String() != "15241578753153483936144" {
		t.Errorf("z.Mul(z, z) = %s", z)
	}
}

func TestAddSubAgainstBig(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(7, 11))
	for range 200 {
		a := randomUint(rng, 1+rng.IntN(300))
		b := randomUint(rng, 1+rng.IntN(300))
		ba, bb := toBig(t, a), toBig(t, b)

		assertEqualBig(t, "add", New().Add(a, b), new(big.Int).Add(ba, bb))

		hi, lo := a, b
		bhi, blo := ba, bb
		if a.Less(b) {
			hi, lo, bhi, blo = b, a, bb, ba
		}
		diff, err := New().Sub(hi, lo)
		if err != nil {
			t.Fatalf("Sub: %v", err)
		}
		assertEqualBig(t, "sub", diff, new(big.Int).Sub(bhi, blo))
	}
}

func TestCanonicalFormAfterArithmetic(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(3, 5))
	check := func(label string, x *Uint) {
		t.Helper()
		d := x.view()
		if len(d) > 1 && d[len(d)-1] == 0 {
			t.Fatalf("%s produced a leading zero: %v", label, d)
		}
	}
	for range 100 {
		a := randomUint(rng, 1+rng.IntN(40))
		b := a.Clone()
		check("sub equal", mustSub(t, a, b))
		check("add", New().Add(a, b))
		check("mul", New().Mul(a, b))
		low, high := a.Split(rng.IntN(a.Len() + 1))
		check("split low", low)
		check("split high", high)
	}
}

func mustSub(t *testing.T, a, b *Uint) *Uint {
	t.Helper()
	z, err := New().Sub(a, b)
	if err != nil {
		t.Fatalf("Sub(%s, %s): %v", a, b, err)
	}
	return z
}
