// FILE: src/internal/sequence/discoverer.go
package sequence

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
)

// Discoverer polls the filesystem for the successor of the last known
// recording file and appends it to the shared file list. Polling is
// deliberate: recording files are written by an independent process with
// no notification channel.
type Discoverer struct {
	list     *FileList
	interval time.Duration
	logger   *log.Logger

	discovered atomic.Uint64
}

func NewDiscoverer(list *FileList, interval time.Duration, logger *log.Logger) *Discoverer {
	return &Discoverer{
		list:     list,
		interval: interval,
		logger:   logger,
	}
}

// Discovered reports how many successor files this discoverer appended.
func (d *Discoverer) Discovered() uint64 {
	return d.discovered.Load()
}

// Run loops until ctx is cancelled or the tail file name stops parsing as
// a numbered sequence. The tail is re-read every iteration, so discovery
// extrapolates from the last known file even when the ingestion worker is
// several files ahead.
func (d *Discoverer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		next, err := Successor(d.list.Last())
		if err != nil {
			// Discovery stops alone; ingestion continues on the files
			// already listed.
			d.logger.Error("msg", "Cannot derive next recording file, stopping discovery",
				"component", "discoverer",
				"last_file", d.list.Last(),
				"error", err)
			return
		}

		if _, err := os.Stat(next); err == nil {
			d.logger.Info("msg", "Next recording file found, queued for ingestion",
				"component", "discoverer",
				"file", next)
			d.list.Append(next)
			d.discovered.Add(1)
			// Look for the following file right away.
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(d.interval):
		}
	}
}
