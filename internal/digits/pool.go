// This file provides pooled scratch digit buffers to reduce GC pressure in
// row-by-row multiplication.

package digits

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Buffer Pools
// ─────────────────────────────────────────────────────────────────────────────

// scratchPools pools digit buffers by size class: 64, 256, 1K, 4K, 16K, 64K,
// 256K and 1M digits.
var scratchPools = [...]sync.Pool{
	{New: func() any { return make(Digits, 64) }},
	{New: func() any { return make(Digits, 256) }},
	{New: func() any { return make(Digits, 1024) }},
	{New: func() any { return make(Digits, 4096) }},
	{New: func() any { return make(Digits, 16384) }},
	{New: func() any { return make(Digits, 65536) }},
	{New: func() any { return make(Digits, 262144) }},
	{New: func() any { return make(Digits, 1048576) }},
}

// scratchSizes defines the size classes for scratchPools.
var scratchSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// scratchPoolIndex returns the pool index for a given size, or -1 when the
// size is too large for pooling.
//
// Sizes are powers of 4 starting from 4^3 = 64, so index i holds 4^(i+3) and
// bits.Len(size-1) maps straight to the index.
func scratchPoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Acquire returns a zeroed digit buffer of length size. Oversized requests
// are allocated directly.
//
//	buf := digits.Acquire(n)
//	defer digits.Release(buf)
func Acquire(size int) Digits {
	idx := scratchPoolIndex(size)
	if idx < 0 {
		return make(Digits, size)
	}
	buf := scratchPools[idx].Get().(Digits)
	clear(buf)
	return buf[:size]
}

// Release returns a buffer obtained from Acquire. Buffers whose capacity does
// not match a size class are left to the GC. Safe to call with nil.
func Release(buf Digits) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := scratchPoolIndex(c)
	if idx >= 0 && scratchSizes[idx] == c {
		scratchPools[idx].Put(buf[:c])
	}
}
