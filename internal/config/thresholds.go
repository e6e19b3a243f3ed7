package config

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/parallel"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--threshold, --max-tasks, --sequential)
//   2. Environment variables (BIGCALC_THRESHOLD, etc.)
//   3. Cached calibration profile (~/.bigcalc_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in bigunsigned/constants.go

// ApplyAdaptiveThresholds fills in the parallelism settings left at their
// zero default from the number of CPUs. A single CPU turns parallel
// multiplication off.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
		if cfg.Threshold == 0 {
			cfg.Sequential = true
		}
	}
	if cfg.MaxTasks == 0 {
		cfg.MaxTasks = EstimateOptimalMaxTasks()
	}
	return cfg
}

// EstimateOptimalParallelThreshold provides a heuristic estimate of the
// operand length, in digits, above which Karatsuba should split its products
// across goroutines. It returns 0 when parallelism cannot pay off.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 0
	case numCPU <= 2:
		return 16384
	case numCPU <= 8:
		return 8192
	case numCPU <= 16:
		return 4096
	default:
		return 2048
	}
}

// EstimateOptimalMaxTasks returns the default bound on live multiplication
// tasks.
func EstimateOptimalMaxTasks() int {
	return parallel.DefaultTaskLimit()
}
