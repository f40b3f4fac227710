// FILE: src/internal/adapter/synthetic.go
package adapter

import (
	"fmt"
	"sync/atomic"
	"time"

	"daqingest/src/internal/core"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// SyntheticOptions tunes the fabricated event stream.
type SyntheticOptions struct {
	// Total number of records before the source reports exhaustion.
	// 0 means unbounded.
	TotalRecords uint64

	// Record production rate. 0 disables rate limiting.
	RecordsPerSecond float64

	// Sub-events per record, at least 1.
	SubEvents int

	// Payload words per sub-event, at least 1.
	PayloadWords int

	// Every Nth fetch yields a fragment instead of a record. 0 disables.
	FragmentEvery uint64
}

// Synthetic fabricates acquisition records at a bounded rate. It backs the
// demo mode of the daqingest binary and the concurrency tests; it performs
// no protocol decoding.
type Synthetic struct {
	opts   SyntheticOptions
	logger *log.Logger
	opened atomic.Uint64
}

func NewSynthetic(opts SyntheticOptions, logger *log.Logger) *Synthetic {
	if opts.SubEvents < 1 {
		opts.SubEvents = 1
	}
	if opts.PayloadWords < 1 {
		opts.PayloadWords = 1
	}
	return &Synthetic{
		opts:   opts,
		logger: logger,
	}
}

// Open ignores the identifier beyond logging it; every handle produces an
// independent record sequence.
func (s *Synthetic) Open(kind core.SourceKind, identifier string) (Handle, error) {
	var limiter *rate.Limiter
	if s.opts.RecordsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.opts.RecordsPerSecond), 1)
	}

	s.opened.Add(1)
	s.logger.Debug("msg", "Synthetic source opened",
		"component", "synthetic_adapter",
		"kind", kind.String(),
		"identifier", identifier)

	return &syntheticHandle{
		opts:    s.opts,
		limiter: limiter,
	}, nil
}

// OpenCount reports how many handles were opened, for tests.
func (s *Synthetic) OpenCount() uint64 {
	return s.opened.Load()
}

type syntheticHandle struct {
	opts    SyntheticOptions
	limiter *rate.Limiter
	fetches uint64
	records uint64
	raw     Raw // reused across fetches, single-fetch lifetime
	closed  atomic.Bool
}

func (h *syntheticHandle) Fetch() (*Raw, Outcome, error) {
	if h.closed.Load() {
		return nil, OutcomeNoMore, fmt.Errorf("fetch on closed synthetic source")
	}

	if h.opts.TotalRecords > 0 && h.records >= h.opts.TotalRecords {
		return nil, OutcomeNoMore, nil
	}

	h.fetches++
	if h.opts.FragmentEvery > 0 && h.fetches%h.opts.FragmentEvery == 0 {
		return nil, OutcomeFragment, nil
	}

	// Non-blocking pace check so the caller's idle backoff stays in
	// control of the wait.
	if h.limiter != nil && !h.limiter.Allow() {
		return nil, OutcomeNoData, nil
	}

	now := time.Now()
	h.raw.TimeHigh = uint32(now.Unix())
	h.raw.TimeLow = uint32(now.UnixMilli() % 1000)

	if cap(h.raw.SubEvents) < h.opts.SubEvents {
		h.raw.SubEvents = make([]SubEvent, h.opts.SubEvents)
	}
	h.raw.SubEvents = h.raw.SubEvents[:h.opts.SubEvents]
	for i := range h.raw.SubEvents {
		payload := h.raw.SubEvents[i].Payload
		if cap(payload) < h.opts.PayloadWords {
			payload = make([]uint32, h.opts.PayloadWords)
		}
		payload = payload[:h.opts.PayloadWords]
		payload[0] = uint32(h.records)
		for j := 1; j < len(payload); j++ {
			payload[j] = uint32(j)
		}
		h.raw.SubEvents[i].Payload = payload
	}

	h.records++
	return &h.raw, OutcomeEvent, nil
}

func (h *syntheticHandle) Close() error {
	h.closed.Store(true)
	return nil
}
