// FILE: src/internal/client/client_test.go
package client

import (
	"errors"
	"sync"
	"testing"
	"time"

	"daqingest/src/internal/adapter"
	"daqingest/src/internal/core"
	"daqingest/src/internal/ingest"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

// fakeHandle serves a fixed number of single-word records, then ends.
type fakeHandle struct {
	mu     sync.Mutex
	total  uint32
	served uint32
	raw    adapter.Raw
}

func (h *fakeHandle) Fetch() (*adapter.Raw, adapter.Outcome, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.served >= h.total {
		return nil, adapter.OutcomeNoMore, nil
	}
	h.raw = adapter.Raw{
		TimeHigh:  1,
		TimeLow:   h.served % 1000,
		SubEvents: []adapter.SubEvent{{Payload: []uint32{h.served}}},
	}
	h.served++
	return &h.raw, adapter.OutcomeEvent, nil
}

func (h *fakeHandle) Close() error { return nil }

type fakeAdapter struct {
	mu          sync.Mutex
	recordCount uint32
	openErr     error
	openedKinds []core.SourceKind
	openedIDs   []string
}

func (a *fakeAdapter) Open(kind core.SourceKind, identifier string) (adapter.Handle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.openErr != nil {
		return nil, a.openErr
	}
	a.openedKinds = append(a.openedKinds, kind)
	a.openedIDs = append(a.openedIDs, identifier)
	return &fakeHandle{total: a.recordCount}, nil
}

func (a *fakeAdapter) lastKind() (core.SourceKind, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.openedKinds) == 0 {
		return 0, false
	}
	return a.openedKinds[len(a.openedKinds)-1], true
}

func testOptions() Options {
	return Options{
		BufferCapacity:    1000,
		IdleBackoff:       time.Millisecond,
		BackpressureDelay: time.Millisecond,
		DiscoverInterval:  5 * time.Millisecond,
		FragmentLogCap:    3,
	}
}

func TestConnectFilesEmptyList(t *testing.T) {
	c := New(&fakeAdapter{}, testOptions(), newTestLogger())
	err := c.ConnectFiles(nil, true)
	assert.ErrorIs(t, err, ErrEmptyFileList)
	assert.False(t, c.IsConnected())
}

func TestConnectAutoDetect(t *testing.T) {
	testCases := []struct {
		name       string
		identifier string
		expected   core.SourceKind
		wantErr    bool
	}{
		{name: "FileExtension", identifier: "x.lmd", expected: core.KindFile},
		{name: "HostAddress", identifier: "192.168.1.1", expected: core.KindStream},
		{name: "TooShort", identifier: "abc", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := &fakeAdapter{}
			c := New(a, testOptions(), newTestLogger())
			err := c.Connect(tc.identifier, core.KindAuto, false)
			if tc.wantErr {
				assert.Error(t, err)
				assert.False(t, c.IsConnected())
				return
			}
			require.NoError(t, err)
			defer c.Disconnect()

			kind, ok := a.lastKind()
			require.True(t, ok)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestConnectOpenFailure(t *testing.T) {
	a := &fakeAdapter{openErr: errors.New("unreachable host")}
	c := New(a, testOptions(), newTestLogger())

	err := c.Connect("daq-host", core.KindStream, false)
	assert.Error(t, err)
	assert.False(t, c.IsConnected())
	assert.Equal(t, "not connected", c.SourceName())
}

func TestConnectTwice(t *testing.T) {
	c := New(&fakeAdapter{}, testOptions(), newTestLogger())
	require.NoError(t, c.Connect("daq-host", core.KindStream, false))
	defer c.Disconnect()

	assert.ErrorIs(t, c.Connect("other-host", core.KindStream, false), ErrAlreadyConnected)
}

func TestFollowIgnoredForStreams(t *testing.T) {
	a := &fakeAdapter{}
	c := New(a, testOptions(), newTestLogger())

	// Asking for continuation on a stream is tolerated, not honored.
	require.NoError(t, c.Connect("daq-host", core.KindStream, true))
	defer c.Disconnect()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"daq-host"}, c.Files())
	assert.Equal(t, uint64(0), c.Stats().FilesDiscovered)
}

func TestDisconnect(t *testing.T) {
	c := New(&fakeAdapter{recordCount: 3}, testOptions(), newTestLogger())
	require.NoError(t, c.Connect("run_0001.lmd", core.KindAuto, false))
	assert.True(t, c.IsConnected())
	assert.Equal(t, "run_0001.lmd", c.SourceName())

	require.NoError(t, c.Disconnect())
	assert.False(t, c.IsConnected())
	assert.Equal(t, "not connected", c.SourceName())

	// Repeated disconnects must not hang or fail.
	require.NoError(t, c.Disconnect())

	// Counters survive the disconnect.
	assert.Equal(t, uint64(3), c.EventsReceived())
}

func TestDisconnectBeforeConnect(t *testing.T) {
	c := New(&fakeAdapter{}, testOptions(), newTestLogger())
	require.NoError(t, c.Disconnect())
	assert.False(t, c.IsConnected())

	_, ok := c.State()
	assert.False(t, ok)
}

func TestDrainAllEvents(t *testing.T) {
	const records = 500
	c := New(&fakeAdapter{recordCount: records}, testOptions(), newTestLogger())
	require.NoError(t, c.Connect("run_0001.lmd", core.KindFile, false))
	defer c.Disconnect()

	var drained []core.Event
	require.Eventually(t, func() bool {
		drained = append(drained, c.DrainEvents(64)...)
		return len(drained) == records
	}, 5*time.Second, time.Millisecond)

	for i, ev := range drained {
		require.Equal(t, uint32(i), ev.Payload[0], "event %d out of order", i)
	}

	assert.Equal(t, uint64(records), c.EventsReceived())
	assert.Equal(t, uint64(records*4), c.BytesReceived())
	assert.Equal(t, 0, c.EventsBuffered())

	state, ok := c.State()
	require.True(t, ok)
	assert.Equal(t, ingest.StateExhausted, state)
}

func TestClearBuffer(t *testing.T) {
	c := New(&fakeAdapter{recordCount: 10}, testOptions(), newTestLogger())
	require.NoError(t, c.Connect("run_0001.lmd", core.KindFile, false))
	defer c.Disconnect()

	require.Eventually(t, func() bool { return c.EventsReceived() == 10 },
		2*time.Second, time.Millisecond)

	c.ClearBuffer()
	assert.Equal(t, 0, c.EventsBuffered())
	assert.Nil(t, c.DrainEvents(10))
}

func TestSetBufferCapacity(t *testing.T) {
	c := New(&fakeAdapter{}, testOptions(), newTestLogger())
	c.SetBufferCapacity(7)
	assert.Equal(t, int64(7), c.Stats().BufferCapacity)
}

func TestStatsSnapshot(t *testing.T) {
	c := New(&fakeAdapter{recordCount: 2}, testOptions(), newTestLogger())

	s := c.Stats()
	assert.False(t, s.Connected)
	assert.Equal(t, "not connected", s.Source)

	require.NoError(t, c.ConnectFiles([]string{"run_0001.lmd", "run_0002.lmd"}, false))
	defer c.Disconnect()

	require.Eventually(t, func() bool {
		return c.Stats().State == ingest.StateExhausted.String()
	}, 2*time.Second, time.Millisecond)

	s = c.Stats()
	assert.True(t, s.Connected)
	assert.Equal(t, "run_0002.lmd", s.Source)
	assert.Equal(t, uint64(4), s.EventsReceived)
	assert.Equal(t, []string{"run_0001.lmd", "run_0002.lmd"}, s.Files)
}
