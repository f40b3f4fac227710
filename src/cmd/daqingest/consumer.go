// FILE: src/cmd/daqingest/consumer.go
package main

import (
	"context"
	"sync/atomic"
	"time"

	"daqingest/src/internal/client"
)

// Drains the event buffer at a fixed cadence, standing in for the
// analysis stage an embedding application would attach.
type consumer struct {
	client  *client.Client
	drained atomic.Uint64
}

func newConsumer(c *client.Client) *consumer {
	return &consumer{client: c}
}

// Run polls the buffer until ctx is cancelled. Drains are non-blocking,
// so an empty result just means the producer held the lock or nothing
// was buffered.
func (c *consumer) Run(ctx context.Context, batch int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			events := c.client.DrainEvents(batch)
			c.drained.Add(uint64(len(events)))
		}
	}
}

func (c *consumer) Drained() uint64 {
	return c.drained.Load()
}
