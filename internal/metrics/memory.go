// Package metrics samples Go runtime memory statistics for the --details
// report, the REPL status command and the server health endpoint.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 `json:"heap_alloc_bytes"`  // bytes in use by the application
	TotalAlloc   uint64 `json:"total_alloc_bytes"` // cumulative bytes allocated
	Sys          uint64 `json:"sys_bytes"`         // total bytes obtained from the OS
	NumGC        uint32 `json:"gc_cycles"`         // completed GC cycles
	PauseTotalNs uint64 `json:"gc_pause_total_ns"` // cumulative GC pause time
	Goroutines   int    `json:"goroutines"`
}

// Since returns the growth of the cumulative counters from before to s.
// HeapAlloc, Sys and Goroutines keep the values of s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemorySnapshot {
	d := s
	d.TotalAlloc -= before.TotalAlloc
	d.NumGC -= before.NumGC
	d.PauseTotalNs -= before.PauseTotalNs
	return d
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It briefly stops the world.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		Goroutines:   runtime.NumGoroutine(),
	}
}
