// FILE: src/internal/session/session.go
package session

import (
	"fmt"
	"sync"

	"daqingest/src/internal/adapter"
	"daqingest/src/internal/core"

	"github.com/lixenwraith/log"
)

// Session is one open handle to an acquisition source, from open to
// close. Fetch is called by exactly one goroutine; Close may race with
// nothing but itself and is idempotent.
type Session struct {
	identifier string
	kind       core.SourceKind
	logger     *log.Logger

	mu     sync.Mutex
	handle adapter.Handle
}

// Open delegates to the adapter. On failure no resources stay allocated.
func Open(a adapter.Adapter, kind core.SourceKind, identifier string, logger *log.Logger) (*Session, error) {
	handle, err := a.Open(kind, identifier)
	if err != nil {
		return nil, fmt.Errorf("open %s source %q: %w", kind, identifier, err)
	}

	logger.Info("msg", "Source opened",
		"component", "session",
		"kind", kind.String(),
		"identifier", identifier)

	return &Session{
		identifier: identifier,
		kind:       kind,
		logger:     logger,
		handle:     handle,
	}, nil
}

// Fetch forwards to the adapter handle. After Close it reports a clean
// end of source.
func (s *Session) Fetch() (*adapter.Raw, adapter.Outcome, error) {
	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()
	if h == nil {
		return nil, adapter.OutcomeNoMore, nil
	}
	return h.Fetch()
}

// Close releases the adapter handle. Safe to call repeatedly or on a
// session that already failed to open.
func (s *Session) Close() {
	s.mu.Lock()
	h := s.handle
	s.handle = nil
	s.mu.Unlock()

	if h == nil {
		return
	}
	if err := h.Close(); err != nil {
		s.logger.Warn("msg", "Source close failed",
			"component", "session",
			"identifier", s.identifier,
			"error", err)
	}
}

// Identifier returns the source name this session was opened with.
func (s *Session) Identifier() string {
	return s.identifier
}

// Kind returns the resolved source kind.
func (s *Session) Kind() core.SourceKind {
	return s.kind
}
