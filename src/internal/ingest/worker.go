// FILE: src/internal/ingest/worker.go
package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"daqingest/src/internal/adapter"
	"daqingest/src/internal/buffer"
	"daqingest/src/internal/core"
	"daqingest/src/internal/sequence"
	"daqingest/src/internal/session"

	"github.com/lixenwraith/log"
)

// Options carries the worker's backoff tunables.
type Options struct {
	// Wait after a fetch that returned no data.
	IdleBackoff time.Duration

	// Wait before the next fetch while the buffer is over its soft
	// capacity. This is the sole backpressure mechanism: the producer
	// slows down, it never drops or blocks indefinitely.
	BackpressureDelay time.Duration

	// Fragment occurrences logged per session before suppression.
	// Processing continues past the cap.
	FragmentLogCap uint64
}

// Worker is the ingestion loop: it pulls raw records from the current
// session, copies their sub-events into the buffer, and advances through
// the shared file list as sources drain. Exactly one Worker runs per
// connection; it alone calls adapter open/fetch/close.
type Worker struct {
	adapter adapter.Adapter
	files   *sequence.FileList
	buf     *buffer.Buffer
	opts    Options
	logger  *log.Logger

	// Owned by the worker goroutine after Run starts.
	current   *session.Session
	fileIndex int

	state       atomic.Int32
	sourceName  atomic.Value // string
	totalBytes  atomic.Uint64
	totalEvents atomic.Uint64
	fragments   atomic.Uint64
}

// NewWorker takes ownership of the already-open first session.
func NewWorker(a adapter.Adapter, files *sequence.FileList, buf *buffer.Buffer,
	first *session.Session, opts Options, logger *log.Logger) *Worker {

	w := &Worker{
		adapter: a,
		files:   files,
		buf:     buf,
		opts:    opts,
		logger:  logger,
		current: first,
	}
	w.sourceName.Store(first.Identifier())
	return w
}

// State reports the worker's current terminal-condition signal.
func (w *Worker) State() State {
	return State(w.state.Load())
}

// SourceName reports the identifier of the source currently being read.
func (w *Worker) SourceName() string {
	name, _ := w.sourceName.Load().(string)
	return name
}

// TotalBytes reports payload bytes received since connect.
func (w *Worker) TotalBytes() uint64 {
	return w.totalBytes.Load()
}

// TotalEvents reports events received since connect.
func (w *Worker) TotalEvents() uint64 {
	return w.totalEvents.Load()
}

// Fragments reports partial records seen since connect.
func (w *Worker) Fragments() uint64 {
	return w.fragments.Load()
}

// Run loops until ctx is cancelled or a fatal condition stops the worker.
// The current session is closed on the way out.
func (w *Worker) Run(ctx context.Context) {
	defer func() { w.current.Close() }()

	for {
		if ctx.Err() != nil {
			return
		}

		if w.State() == StateExhausted {
			opened, fatal := w.openNext()
			if fatal {
				return
			}
			if !opened {
				w.sleep(ctx, w.opts.IdleBackoff)
			}
			continue
		}

		raw, outcome, err := w.current.Fetch()
		if err != nil {
			w.logger.Error("msg", "Fatal source error, ingestion stopped",
				"component", "ingest",
				"source", w.SourceName(),
				"error", err)
			w.state.Store(int32(StateFailed))
			return
		}

		switch outcome {
		case adapter.OutcomeNoMore:
			w.logger.Info("msg", "Source exhausted",
				"component", "ingest",
				"source", w.SourceName(),
				"bytes_received", w.totalBytes.Load(),
				"events_received", w.totalEvents.Load())
			w.current.Close()

			opened, fatal := w.openNext()
			if fatal {
				return
			}
			if !opened {
				// Keep polling: the discoverer or the caller may still
				// append files.
				w.state.Store(int32(StateExhausted))
			}

		case adapter.OutcomeFragment:
			n := w.fragments.Add(1)
			if n <= w.opts.FragmentLogCap {
				w.logger.Warn("msg", "Event fragment received",
					"component", "ingest",
					"source", w.SourceName(),
					"count", n)
				if n == w.opts.FragmentLogCap {
					w.logger.Warn("msg", "Fragment log cap reached, further fragments counted silently",
						"component", "ingest",
						"cap", w.opts.FragmentLogCap)
				}
			}

		case adapter.OutcomeNoData:
			w.sleep(ctx, w.opts.IdleBackoff)

		case adapter.OutcomeEvent:
			w.ingest(raw)
			if w.buf.OverCapacity() {
				w.sleep(ctx, w.opts.BackpressureDelay)
			}
		}
	}
}

// ingest copies every non-empty sub-event out of the adapter-owned view
// before the next fetch invalidates it.
func (w *Worker) ingest(raw *adapter.Raw) {
	ts := core.CombineTimestamp(raw.TimeHigh, raw.TimeLow)
	for _, sub := range raw.SubEvents {
		if len(sub.Payload) == 0 {
			continue
		}

		payload := make([]uint32, len(sub.Payload))
		copy(payload, sub.Payload)

		ev := core.Event{Timestamp: ts, Payload: payload}
		w.buf.Push(ev)
		w.totalEvents.Add(1)
		w.totalBytes.Add(ev.ByteSize())
	}
}

// openNext advances to the next unconsumed file if the list has one.
// fatal is true when the next file exists but cannot be opened; that
// stops the worker for good.
func (w *Worker) openNext() (opened bool, fatal bool) {
	next, ok := w.files.At(w.fileIndex + 1)
	if !ok {
		return false, false
	}

	s, err := session.Open(w.adapter, core.KindFile, next, w.logger)
	if err != nil {
		w.logger.Error("msg", "Cannot open next recording file, ingestion stopped",
			"component", "ingest",
			"file", next,
			"error", err)
		w.state.Store(int32(StateFailed))
		return false, true
	}

	w.fileIndex++
	w.current = s
	w.sourceName.Store(next)
	w.state.Store(int32(StateRunning))
	return true, false
}

func (w *Worker) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
