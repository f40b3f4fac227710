// FILE: src/internal/ingest/state.go
package ingest

// State is the ingestion worker's terminal-condition signal, readable by
// the consumer at any time. It distinguishes "waiting for more files"
// from "stopped for good", which a stalled counter alone cannot.
type State int32

const (
	// StateRunning means the worker is fetching from an open source.
	StateRunning State = iota
	// StateExhausted means every listed file returned end-of-source; the
	// worker keeps polling the file list for late appends.
	StateExhausted
	// StateFailed means a fatal adapter error or a mid-sequence open
	// failure stopped the worker. No further progress will occur.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
