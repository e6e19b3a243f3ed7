// Package sysmon samples system-wide CPU and memory usage for the health
// endpoint and the REPL status command.
package sysmon

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 `json:"cpu_percent"` // 0..100, since the previous sample
	MemPercent float64 `json:"mem_percent"` // 0..100
	MemTotal   uint64  `json:"mem_total_bytes"`
	MemUsed    uint64  `json:"mem_used_bytes"`
}

// Sample collects a snapshot. CPU usage is measured since the previous call
// (interval 0), so the very first sample of a process may read 0. Fields
// that could not be read stay zero and their errors are joined.
func Sample(ctx context.Context) (Stats, error) {
	var s Stats
	var errs []error

	cpuPcts, err := cpu.PercentWithContext(ctx, 0, false)
	switch {
	case err != nil:
		errs = append(errs, err)
	case len(cpuPcts) > 0:
		s.CPUPercent = cpuPcts[0]
	}

	vmem, err := mem.VirtualMemoryWithContext(ctx)
	switch {
	case err != nil:
		errs = append(errs, err)
	case vmem != nil:
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
		s.MemUsed = vmem.Used
	}
	return s, errors.Join(errs...)
}
