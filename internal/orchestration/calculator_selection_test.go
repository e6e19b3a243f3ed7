package orchestration

import (
	"testing"

	"github.com/agbru/bigcalc/internal/calc"
)

// TestGetCalculatorsToRun tests the GetCalculatorsToRun function.
func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := calc.GlobalFactory()

	t.Run("Single algorithm returns one calculator", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("karatsuba", factory)
		if len(calculators) != 1 || calculators[0].Name() != "karatsuba" {
			t.Fatalf("got %v, want [karatsuba]", calculators)
		}
	})

	t.Run("All returns every calculator in sorted order", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("all", factory)
		if len(calculators) != len(factory.List()) {
			t.Fatalf("got %d calculators, want %d", len(calculators), len(factory.List()))
		}
		for i := 1; i < len(calculators); i++ {
			if calculators[i-1].Name() >= calculators[i].Name() {
				t.Errorf("calculators not sorted: %s before %s", calculators[i-1].Name(), calculators[i].Name())
			}
		}
	})

	t.Run("Unknown algorithm returns none", func(t *testing.T) {
		t.Parallel()
		if calculators := GetCalculatorsToRun("toom3", factory); len(calculators) != 0 {
			t.Errorf("got %d calculators, want 0", len(calculators))
		}
	})
}
