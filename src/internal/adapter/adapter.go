// FILE: src/internal/adapter/adapter.go
package adapter

import (
	"daqingest/src/internal/core"
)

// Outcome classifies one fetch from an open source.
type Outcome int

const (
	// OutcomeEvent delivers a decoded record.
	OutcomeEvent Outcome = iota
	// OutcomeNoData means no event is ready yet; the caller should back
	// off briefly and retry.
	OutcomeNoData
	// OutcomeNoMore is the clean end of the source.
	OutcomeNoMore
	// OutcomeFragment marks a partial record; not fatal, the caller
	// should continue with the next fetch.
	OutcomeFragment
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEvent:
		return "event"
	case OutcomeNoData:
		return "no_data"
	case OutcomeNoMore:
		return "no_more"
	case OutcomeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// SubEvent is one decoded sub-event of a raw record.
type SubEvent struct {
	Payload []uint32
}

// Raw is the adapter-owned view of one decoded record. It is valid only
// until the next Fetch on the same handle; callers must copy out every
// field they keep.
type Raw struct {
	// Clock words from the buffer header, combined downstream via
	// core.CombineTimestamp.
	TimeHigh uint32
	TimeLow  uint32

	// Zero or more sub-events sharing the record's timestamp.
	SubEvents []SubEvent
}

// Handle is one open source, from open to close. Exactly one goroutine
// may call Fetch at a time.
type Handle interface {
	// Fetch returns the next raw record. The returned Raw is invalidated
	// by the following Fetch. A non-nil error is fatal for the session.
	Fetch() (*Raw, Outcome, error)

	// Close releases the source. Implementations must tolerate multiple
	// calls.
	Close() error
}

// Adapter opens acquisition sources. It owns the wire and file envelope
// format; this package only consumes already-decoded records.
type Adapter interface {
	Open(kind core.SourceKind, identifier string) (Handle, error)
}
