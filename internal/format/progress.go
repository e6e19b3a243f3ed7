package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressState tracks which of a fixed set of calculators have finished.
// It is not safe for concurrent use; the progress display owns it.
type ProgressState struct {
	done      []bool
	completed int
}

// NewProgressState creates a state for numCalculators calculators.
func NewProgressState(numCalculators int) *ProgressState {
	return &ProgressState{done: make([]bool, numCalculators)}
}

// MarkDone records that the calculator at index finished. Out-of-range
// indices and repeated calls are ignored. It reports whether the state
// changed.
func (ps *ProgressState) MarkDone(index int) bool {
	if index < 0 || index >= len(ps.done) || ps.done[index] {
		return false
	}
	ps.done[index] = true
	ps.completed++
	return true
}

// Completed returns the number of finished calculators.
func (ps *ProgressState) Completed() int { return ps.completed }

// Total returns the number of tracked calculators.
func (ps *ProgressState) Total() int { return len(ps.done) }

// Fraction returns the finished share in [0, 1]. Zero calculators count as
// no progress.
func (ps *ProgressState) Fraction() float64 {
	if len(ps.done) == 0 {
		return 0
	}
	return float64(ps.completed) / float64(len(ps.done))
}

// ProgressBar renders progress, clamped to [0, 1], as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgress renders a one-line summary such as
// "[█████░░░░░] 1/2 done, 15ms elapsed".
func FormatProgress(ps *ProgressState, elapsed time.Duration, width int) string {
	return fmt.Sprintf("[%s] %d/%d done, %s elapsed",
		ProgressBar(ps.Fraction(), width), ps.Completed(), ps.Total(), FormatExecutionDuration(elapsed))
}
