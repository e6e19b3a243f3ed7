package calibration

import (
	"runtime"

	"github.com/agbru/bigcalc/internal/config"
)

// GenerateParallelThresholds lists the parallel thresholds, in digits, worth
// benchmarking on this machine. 0 stands for sequential multiplication.
//
// More cores make smaller subproducts worth spawning, so the list reaches
// lower thresholds as the core count grows. A single core only tests 0.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{0}
	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 2048, 4096, 8192, 16384)
	case numCPU <= 8:
		thresholds = append(thresholds, 1024, 2048, 4096, 8192, 16384)
	case numCPU <= 16:
		thresholds = append(thresholds, 512, 1024, 2048, 4096, 8192, 16384)
	default:
		thresholds = append(thresholds, 256, 512, 1024, 2048, 4096, 8192, 16384)
	}
	return thresholds
}

// GenerateQuickParallelThresholds is the reduced list used by startup
// auto-calibration.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{0}
	case numCPU <= 4:
		return []int{0, 4096, 8192}
	case numCPU <= 8:
		return []int{0, 2048, 4096, 8192}
	default:
		return []int{0, 1024, 2048, 4096, 8192}
	}
}

// EstimateOptimalParallelThreshold delegates to config.EstimateOptimalParallelThreshold.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }
