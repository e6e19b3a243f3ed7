package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// CalculatorDoneMsg reports that one calculator finished an operation.
type CalculatorDoneMsg struct {
	Op       calc.Operation
	Index    int
	Name     string
	Duration time.Duration
	Failed   bool
}

// ProgressDoneMsg is sent once every calculator has finished Op.
type ProgressDoneMsg struct {
	Op calc.Operation
}

// ResultsMsg carries the sorted results of Op when several calculators ran.
type ResultsMsg struct {
	Op      calc.Operation
	Results []orchestration.CalculationResult
}

// FinalResultMsg carries the fastest agreed result of Op.
type FinalResultMsg struct {
	Op     calc.Operation
	Result orchestration.CalculationResult
}

// ErrorMsg reports that no calculator completed Op.
type ErrorMsg struct {
	Op       calc.Operation
	Err      error
	Duration time.Duration
}

// RunCompleteMsg is sent when every operation has been analyzed.
type RunCompleteMsg struct {
	ExitCode int
}

// TickMsg drives the elapsed clock and the system samples.
type TickMsg time.Time

// SysStatsMsg carries one system usage sample.
type SysStatsMsg struct {
	Stats sysmon.Stats
}

// ContextCancelledMsg is sent when the run's context ends.
type ContextCancelledMsg struct {
	Err error
}
