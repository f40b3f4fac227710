// FILE: src/internal/client/client.go
package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"daqingest/src/internal/adapter"
	"daqingest/src/internal/buffer"
	"daqingest/src/internal/core"
	"daqingest/src/internal/ingest"
	"daqingest/src/internal/sequence"
	"daqingest/src/internal/session"

	"github.com/lixenwraith/log"
)

var (
	ErrEmptyFileList    = errors.New("file list is empty")
	ErrAlreadyConnected = errors.New("already connected")
)

// Reported as the source name while no connection is open.
const disconnectedName = "not connected"

// Options carries the client tunables. Zero values fall back to defaults.
type Options struct {
	// Soft cap on buffered events before the ingestion worker throttles.
	BufferCapacity int64

	// Worker wait when the source has no event ready.
	IdleBackoff time.Duration

	// Worker wait per iteration while the buffer is over capacity.
	BackpressureDelay time.Duration

	// Poll interval for successor recording files.
	DiscoverInterval time.Duration

	// Fragment occurrences logged per session before suppression.
	FragmentLogCap uint64
}

// DefaultOptions returns the stock tunables.
func DefaultOptions() Options {
	return Options{
		BufferCapacity:    100000,
		IdleBackoff:       time.Millisecond,
		BackpressureDelay: 50 * time.Millisecond,
		DiscoverInterval:  100 * time.Millisecond,
		FragmentLogCap:    10,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BufferCapacity == 0 {
		o.BufferCapacity = d.BufferCapacity
	}
	if o.IdleBackoff == 0 {
		o.IdleBackoff = d.IdleBackoff
	}
	if o.BackpressureDelay == 0 {
		o.BackpressureDelay = d.BackpressureDelay
	}
	if o.DiscoverInterval == 0 {
		o.DiscoverInterval = d.DiscoverInterval
	}
	if o.FragmentLogCap == 0 {
		o.FragmentLogCap = d.FragmentLogCap
	}
	return o
}

// Client is the public facade over the ingestion machinery: it opens the
// first source, spawns the ingestion worker (and, for file sequences, the
// discoverer), and exposes buffer draining and counters to the consumer.
// Disconnect joins all spawned goroutines before returning.
type Client struct {
	adapter adapter.Adapter
	opts    Options
	logger  *log.Logger

	// Created once; survives reconnects so a consumer can keep draining
	// what an earlier connection buffered.
	buf *buffer.Buffer

	mu         sync.Mutex // guards connect/disconnect transitions
	connected  atomic.Bool
	files      *sequence.FileList
	worker     *ingest.Worker
	discoverer *sequence.Discoverer
	cancel     context.CancelFunc
	wg         *sync.WaitGroup
	startTime  time.Time
}

func New(a adapter.Adapter, opts Options, logger *log.Logger) *Client {
	opts = opts.withDefaults()
	return &Client{
		adapter: a,
		opts:    opts,
		logger:  logger,
		buf:     buffer.New(opts.BufferCapacity),
	}
}

// Connect opens a single source by identifier. KindAuto resolves to file
// for identifiers ending in the recording extension, stream otherwise.
// followSequence asks for automatic continuation onto successor files; it
// is silently ignored for stream sources.
func (c *Client) Connect(identifier string, kind core.SourceKind, followSequence bool) error {
	resolved, err := core.ResolveKind(identifier, kind)
	if err != nil {
		return err
	}

	if followSequence && resolved != core.KindFile {
		c.logger.Warn("msg", "Sequence following only applies to recording files, ignoring",
			"component", "client",
			"kind", resolved.String())
		followSequence = false
	}

	return c.start(sequence.NewFileList(identifier), resolved, followSequence)
}

// ConnectFiles opens an ordered set of recording files supplied up front.
func (c *Client) ConnectFiles(files []string, followSequence bool) error {
	if len(files) == 0 {
		return ErrEmptyFileList
	}
	return c.start(sequence.NewFileList(files...), core.KindFile, followSequence)
}

func (c *Client) start(files *sequence.FileList, kind core.SourceKind, followSequence bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected.Load() {
		return ErrAlreadyConnected
	}

	first, _ := files.At(0)
	sess, err := session.Open(c.adapter, kind, first, c.logger)
	if err != nil {
		// No workers spawned, nothing to unwind.
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}

	c.files = files
	c.cancel = cancel
	c.wg = wg
	c.startTime = time.Now()

	c.worker = ingest.NewWorker(c.adapter, files, c.buf, sess, ingest.Options{
		IdleBackoff:       c.opts.IdleBackoff,
		BackpressureDelay: c.opts.BackpressureDelay,
		FragmentLogCap:    c.opts.FragmentLogCap,
	}, c.logger)

	wg.Add(1)
	go func() {
		defer wg.Done()
		c.worker.Run(ctx)
	}()

	c.discoverer = nil
	if followSequence {
		c.discoverer = sequence.NewDiscoverer(files, c.opts.DiscoverInterval, c.logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.discoverer.Run(ctx)
		}()
	}

	c.connected.Store(true)
	c.logger.Info("msg", "Connected",
		"component", "client",
		"source", first,
		"kind", kind.String(),
		"follow_sequence", followSequence)
	return nil
}

// Disconnect signals the workers to stop and joins them before closing
// down. Blocking without timeout: shutdown latency is bounded by one
// fetch or backoff cycle. Calling it again, or before any connect, is a
// no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected.Load() {
		return nil
	}

	c.cancel()
	c.wg.Wait()
	c.cancel = nil
	c.connected.Store(false)

	c.logger.Info("msg", "Disconnected",
		"component", "client",
		"bytes_received", c.worker.TotalBytes(),
		"events_received", c.worker.TotalEvents())
	return nil
}

// IsConnected reports true from a successful connect until Disconnect
// completes.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// DrainEvents removes up to max events from the buffer, preserving
// order. Never blocks: under producer contention it returns nothing and
// the caller retries.
func (c *Client) DrainEvents(max int) []core.Event {
	return c.buf.Drain(max)
}

// ClearBuffer discards all buffered events.
func (c *Client) ClearBuffer() {
	c.buf.Clear()
}

// SetBufferCapacity updates the soft cap; the worker picks it up on its
// next backpressure check.
func (c *Client) SetBufferCapacity(n int64) {
	c.buf.SetCapacity(n)
}

// EventsBuffered reports the events currently resident in the buffer.
func (c *Client) EventsBuffered() int {
	return c.buf.Len()
}

// BytesReceived reports total payload bytes since the last connect.
func (c *Client) BytesReceived() uint64 {
	c.mu.Lock()
	w := c.worker
	c.mu.Unlock()
	if w == nil {
		return 0
	}
	return w.TotalBytes()
}

// EventsReceived reports total events since the last connect.
func (c *Client) EventsReceived() uint64 {
	c.mu.Lock()
	w := c.worker
	c.mu.Unlock()
	if w == nil {
		return 0
	}
	return w.TotalEvents()
}

// SourceName reports the source currently being read, or a placeholder
// while disconnected.
func (c *Client) SourceName() string {
	if !c.connected.Load() {
		return disconnectedName
	}
	c.mu.Lock()
	w := c.worker
	c.mu.Unlock()
	if w == nil {
		return disconnectedName
	}
	return w.SourceName()
}

// Files returns a snapshot of the file list, discovered entries included.
func (c *Client) Files() []string {
	c.mu.Lock()
	l := c.files
	c.mu.Unlock()
	if l == nil {
		return nil
	}
	return l.Snapshot()
}

// State reports the ingestion worker's terminal-condition signal. ok is
// false before the first connect.
func (c *Client) State() (ingest.State, bool) {
	c.mu.Lock()
	w := c.worker
	c.mu.Unlock()
	if w == nil {
		return ingest.StateRunning, false
	}
	return w.State(), true
}

// Stats assembles a point-in-time snapshot for status reporting.
func (c *Client) Stats() Stats {
	c.mu.Lock()
	w := c.worker
	d := c.discoverer
	l := c.files
	start := c.startTime
	c.mu.Unlock()

	s := Stats{
		Connected:      c.connected.Load(),
		Source:         disconnectedName,
		EventsBuffered: c.buf.Len(),
		BufferCapacity: c.buf.Capacity(),
		StartTime:      start,
	}
	if w != nil {
		s.State = w.State().String()
		s.BytesReceived = w.TotalBytes()
		s.EventsReceived = w.TotalEvents()
		s.Fragments = w.Fragments()
		if s.Connected {
			s.Source = w.SourceName()
		}
	}
	if d != nil {
		s.FilesDiscovered = d.Discovered()
	}
	if l != nil {
		s.Files = l.Snapshot()
	}
	return s
}

// Stats is a consistent-enough snapshot of the client's counters for
// status surfaces; individual fields are read atomically.
type Stats struct {
	Connected       bool      `json:"connected"`
	Source          string    `json:"source"`
	State           string    `json:"state,omitempty"`
	BytesReceived   uint64    `json:"bytes_received"`
	EventsReceived  uint64    `json:"events_received"`
	EventsBuffered  int       `json:"events_buffered"`
	BufferCapacity  int64     `json:"buffer_capacity"`
	Fragments       uint64    `json:"fragments"`
	Files           []string  `json:"files,omitempty"`
	FilesDiscovered uint64    `json:"files_discovered"`
	StartTime       time.Time `json:"start_time"`
}
