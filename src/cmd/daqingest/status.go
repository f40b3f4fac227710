// FILE: src/cmd/daqingest/status.go
package main

import (
	"context"
	"time"

	"daqingest/src/internal/client"
)

// Periodically logs client status
func statusReporter(ctx context.Context, c *client.Client, cons *consumer) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := c.Stats()
			logger.Info("msg", "Status report",
				"component", "status_reporter",
				"source", stats.Source,
				"state", stats.State,
				"events_received", stats.EventsReceived,
				"bytes_received", stats.BytesReceived,
				"events_buffered", stats.EventsBuffered,
				"events_drained", cons.Drained(),
				"fragments", stats.Fragments,
				"files_discovered", stats.FilesDiscovered)
		}
	}
}
