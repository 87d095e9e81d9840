package samplehist

import (
	"math/bits"
	"sync/atomic"
)

// b32 records which of the 32 slots of a level are allocated.
type b32 [1]uint32

func (b *b32) Clone() b32 { return b32{atomic.LoadUint32(&b[0])} }

// Set marks idx. Each slot is set at most once, so an add acts as an or.
func (b *b32) Set(idx uint) { atomic.AddUint32(&b[0], 1<<(idx&31)) }

// Next pops the lowest set slot. It must only be called on a clone.
func (b *b32) Next() (idx uint32, ok bool) {
	u := b[0]
	if u == 0 {
		return 0, false
	}
	b[0] = u & (u - 1)
	return uint32(bits.TrailingZeros32(u)), true
}
