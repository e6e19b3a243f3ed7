package calc

import (
	"fmt"
	"math"
	"runtime"
	"runtime/debug"
	"slices"

	"github.com/rs/zerolog"
)

// GCMode selects how the garbage collector is handled around a batch of
// operations.
type GCMode string

const (
	// GCModeAuto suspends the collector only for operands of at least
	// GCAutoThreshold digits.
	GCModeAuto GCMode = "auto"
	// GCModeAggressive always suspends the collector.
	GCModeAggressive GCMode = "aggressive"
	// GCModeDisabled leaves the runtime alone.
	GCModeDisabled GCMode = "disabled"
)

// GCModes lists the accepted modes.
var GCModes = []GCMode{GCModeAuto, GCModeAggressive, GCModeDisabled}

// GCAutoThreshold is the operand length from which auto mode suspends the
// collector. Karatsuba at this size allocates dozens of temporaries per
// recursion level, most of them dead by the time a cycle would run.
const GCAutoThreshold = 200_000

// memLimitFactor bounds the heap while collection is off, as a multiple of
// the memory obtained from the OS at Begin.
const memLimitFactor = 3

// ParseGCMode validates a mode name.
func ParseGCMode(s string) (GCMode, error) {
	if m := GCMode(s); slices.Contains(GCModes, m) {
		return m, nil
	}
	return "", fmt.Errorf("unknown gc mode %q", s)
}

// GCStats is the allocation activity recorded between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

type memSnapshot runtime.MemStats

func takeSnapshot() memSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return memSnapshot(ms)
}

// since returns the activity from earlier to s.
func (s memSnapshot) since(earlier memSnapshot) GCStats {
	return GCStats{
		HeapAlloc:    s.HeapAlloc,
		TotalAlloc:   s.TotalAlloc - earlier.TotalAlloc,
		NumGC:        s.NumGC - earlier.NumGC,
		PauseTotalNs: s.PauseTotalNs - earlier.PauseTotalNs,
	}
}

// GCController turns the collector off for the duration of a large
// computation. A soft memory limit stays in force meanwhile so that the
// runtime still collects before the process runs out of memory.
type GCController struct {
	mode     GCMode
	suspend  bool
	percent  int
	log      zerolog.Logger
	from, to memSnapshot
}

// NewGCController decides, from mode and the longest operand, whether Begin
// will suspend the collector.
func NewGCController(mode GCMode, digits int) *GCController {
	return &GCController{
		mode:    mode,
		suspend: mode == GCModeAggressive || (mode == GCModeAuto && digits >= GCAutoThreshold),
		log:     zerolog.Nop(),
	}
}

// SetLogger sets the destination of the suspend and resume debug events.
func (gc *GCController) SetLogger(l zerolog.Logger) { gc.log = l }

// Active reports whether Begin suspends the collector.
func (gc *GCController) Active() bool { return gc.suspend }

// Begin records the starting statistics and, when active, suspends the
// collector.
func (gc *GCController) Begin() {
	gc.from = takeSnapshot()
	if !gc.suspend {
		return
	}
	gc.percent = debug.SetGCPercent(-1)
	if limit := int64(gc.from.Sys) * memLimitFactor; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.log.Debug().Str("mode", string(gc.mode)).Uint64("heap_alloc_bytes", gc.from.HeapAlloc).Msg("gc suspended")
}

// End records the final statistics and, when active, restores the previous
// settings and runs a collection.
func (gc *GCController) End() {
	gc.to = takeSnapshot()
	if !gc.suspend {
		return
	}
	debug.SetGCPercent(gc.percent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	st := gc.Stats()
	gc.log.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", st.HeapAlloc).
		Uint64("total_alloc_bytes", st.TotalAlloc).
		Uint32("gc_cycles", st.NumGC).
		Msg("gc resumed")
}

// Stats returns the activity between Begin and End.
func (gc *GCController) Stats() GCStats { return gc.to.since(gc.from) }
