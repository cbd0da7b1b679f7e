// Package protocol implements the rig's text command protocol: the
// receive ring buffer, line framing, command parsing and the transport
// statistics counters.
package protocol

import "sync/atomic"

// DefaultRingCapacity sizes the receive buffer for the command line
// lengths the protocol sees in practice.
const DefaultRingCapacity = 256

// Ring is a single-producer/single-consumer byte ring. The producer
// (transport receive callback) may run concurrently with the consumer
// (control loop); indices are published with atomics so neither side
// ever reads a slot the other is still writing. One slot stays unused
// to distinguish full from empty, so usable capacity is size-1.
//
// When the ring is full, new bytes are dropped and counted rather than
// overwriting unread data: an overrun is observable through Dropped but
// never corrupts bytes already queued.
type Ring struct {
	buf     []byte
	size    uint32
	read    atomic.Uint32
	write   atomic.Uint32
	dropped atomic.Uint32
}

// NewRing creates a ring holding up to capacity-1 bytes.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		capacity = 2
	}
	return &Ring{
		buf:  make([]byte, capacity),
		size: uint32(capacity),
	}
}

// Push appends data from the producer side, returning how many bytes
// were accepted. Rejected bytes are added to the dropped counter.
func (r *Ring) Push(data []byte) int {
	w := r.write.Load()
	rd := r.read.Load()
	pushed := 0
	for _, b := range data {
		next := (w + 1) % r.size
		if next == rd {
			break
		}
		r.buf[w] = b
		w = next
		pushed++
	}
	r.write.Store(w)
	if pushed < len(data) {
		r.dropped.Add(uint32(len(data) - pushed))
	}
	return pushed
}

// Next pops a single byte from the consumer side.
func (r *Ring) Next() (byte, bool) {
	rd := r.read.Load()
	if rd == r.write.Load() {
		return 0, false
	}
	b := r.buf[rd]
	r.read.Store((rd + 1) % r.size)
	return b, true
}

// Pop reads up to len(dst) bytes, returning how many were copied.
func (r *Ring) Pop(dst []byte) int {
	n := 0
	for n < len(dst) {
		b, ok := r.Next()
		if !ok {
			break
		}
		dst[n] = b
		n++
	}
	return n
}

// Available returns the number of unread bytes.
func (r *Ring) Available() int {
	rd := r.read.Load()
	w := r.write.Load()
	if w >= rd {
		return int(w - rd)
	}
	return int(r.size - rd + w)
}

// Dropped returns the number of bytes rejected because the ring was
// full.
func (r *Ring) Dropped() uint32 {
	return r.dropped.Load()
}

// Reset empties the ring. Only safe when the producer is quiescent.
func (r *Ring) Reset() {
	r.read.Store(0)
	r.write.Store(0)
}
