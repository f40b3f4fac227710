// FILE: src/internal/buffer/buffer_test.go
package buffer

import (
	"sync"
	"testing"
	"time"

	"daqingest/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEvent(seq uint32) core.Event {
	return core.Event{
		Timestamp: uint64(seq) * 1000,
		Payload:   []uint32{seq},
	}
}

func TestBuffer_PushDrainOrder(t *testing.T) {
	b := New(0)

	const n = 100
	for i := uint32(0); i < n; i++ {
		b.Push(makeEvent(i))
	}
	assert.Equal(t, n, b.Len())

	var drained []core.Event
	for b.Len() > 0 {
		drained = append(drained, b.Drain(7)...)
	}

	require.Len(t, drained, n)
	for i, ev := range drained {
		assert.Equal(t, uint32(i), ev.Payload[0])
	}
}

func TestBuffer_Drain(t *testing.T) {
	t.Run("MoreThanBuffered", func(t *testing.T) {
		b := New(0)
		b.Push(makeEvent(1))
		b.Push(makeEvent(2))

		out := b.Drain(10)
		assert.Len(t, out, 2)
		assert.Equal(t, 0, b.Len())
	})

	t.Run("Zero", func(t *testing.T) {
		b := New(0)
		b.Push(makeEvent(1))
		assert.Nil(t, b.Drain(0))
		assert.Equal(t, 1, b.Len())
	})

	t.Run("Empty", func(t *testing.T) {
		b := New(0)
		assert.Nil(t, b.Drain(10))
	})

	t.Run("OwnershipTransfer", func(t *testing.T) {
		b := New(0)
		b.Push(makeEvent(1))
		out := b.Drain(1)
		require.Len(t, out, 1)

		// Later pushes must not alias the drained slice.
		b.Push(makeEvent(99))
		assert.Equal(t, uint32(1), out[0].Payload[0])
	})
}

func TestBuffer_Clear(t *testing.T) {
	b := New(0)
	for i := uint32(0); i < 10; i++ {
		b.Push(makeEvent(i))
	}

	b.Clear()
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Drain(10))

	// Buffer stays usable after clear.
	b.Push(makeEvent(42))
	out := b.Drain(1)
	require.Len(t, out, 1)
	assert.Equal(t, uint32(42), out[0].Payload[0])
}

func TestBuffer_Capacity(t *testing.T) {
	b := New(2)
	assert.False(t, b.OverCapacity())

	b.Push(makeEvent(1))
	b.Push(makeEvent(2))
	assert.False(t, b.OverCapacity())

	b.Push(makeEvent(3))
	assert.True(t, b.OverCapacity())

	b.SetCapacity(10)
	assert.False(t, b.OverCapacity())

	// Zero capacity disables the signal entirely.
	b.SetCapacity(0)
	assert.False(t, b.OverCapacity())
}

// Concurrent pushes and drains must hand every event to the consumer
// exactly once, in push order.
func TestBuffer_ConcurrentFIFO(t *testing.T) {
	b := New(0)
	const n = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := uint32(0); i < n; i++ {
			b.Push(makeEvent(i))
		}
	}()

	var drained []core.Event
	deadline := time.Now().Add(10 * time.Second)
	for len(drained) < n {
		require.True(t, time.Now().Before(deadline), "timed out draining events")
		if out := b.Drain(64); len(out) > 0 {
			drained = append(drained, out...)
		} else {
			time.Sleep(time.Millisecond)
		}
	}
	wg.Wait()

	require.Len(t, drained, n)
	for i, ev := range drained {
		require.Equal(t, uint32(i), ev.Payload[0], "event %d out of order", i)
	}
	assert.Equal(t, 0, b.Len())
}
