package orchestration

import "github.com/agbru/bigcalc/internal/calc"

// GetCalculatorsToRun resolves an --algo value against the factory. "all"
// selects every registered calculator in sorted order; an unknown name
// selects none.
//
// Parameters:
//   - algo: A calculator name or "all".
//   - factory: The calculator factory to retrieve implementations from.
//
// Returns:
//   - []calc.Calculator: The calculators to execute.
func GetCalculatorsToRun(algo string, factory calc.CalculatorFactory) []calc.Calculator {
	if algo == "all" {
		return factory.GetAll()
	}
	if c, err := factory.Get(algo); err == nil {
		return []calc.Calculator{c}
	}
	return nil
}
