// FILE: src/internal/buffer/buffer.go
package buffer

import (
	"sync"
	"sync/atomic"

	"daqingest/src/internal/core"
)

// Buffer is a bounded, ordered, thread-safe FIFO of decoded events.
//
// The bound is soft: Push never fails or drops, producers are expected to
// throttle themselves via OverCapacity. Drain never blocks the consumer;
// under lock contention it returns nothing and the consumer retries later.
type Buffer struct {
	mu     sync.Mutex
	events []core.Event

	length   atomic.Int64
	capacity atomic.Int64
}

// New creates a buffer with the given soft capacity. A capacity of 0 or
// less disables the OverCapacity signal.
func New(capacity int64) *Buffer {
	b := &Buffer{}
	b.capacity.Store(capacity)
	return b
}

// Push appends one event to the tail. Arrival order is drain order.
func (b *Buffer) Push(ev core.Event) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.length.Store(int64(len(b.events)))
	b.mu.Unlock()
}

// Drain removes and returns up to max events from the head. If a producer
// holds the lock, Drain returns nil immediately instead of waiting.
// Ownership of the returned events passes to the caller.
func (b *Buffer) Drain(max int) []core.Event {
	if max <= 0 {
		return nil
	}
	if !b.mu.TryLock() {
		return nil
	}
	defer b.mu.Unlock()

	n := min(max, len(b.events))
	if n == 0 {
		return nil
	}

	out := make([]core.Event, n)
	copy(out, b.events[:n])
	b.events = b.events[n:]
	if len(b.events) == 0 {
		b.events = nil
	}
	b.length.Store(int64(len(b.events)))
	return out
}

// Clear discards all buffered events. Unlike Drain it waits for the lock.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.events = nil
	b.length.Store(0)
	b.mu.Unlock()
}

// Len reports the current number of buffered events without taking the
// lock.
func (b *Buffer) Len() int {
	return int(b.length.Load())
}

// SetCapacity updates the soft capacity. Takes effect on the producer's
// next OverCapacity check.
func (b *Buffer) SetCapacity(n int64) {
	b.capacity.Store(n)
}

// Capacity returns the current soft capacity.
func (b *Buffer) Capacity() int64 {
	return b.capacity.Load()
}

// OverCapacity reports whether the buffer exceeds its soft capacity and
// the producer should slow down.
func (b *Buffer) OverCapacity() bool {
	c := b.capacity.Load()
	return c > 0 && b.length.Load() > c
}
