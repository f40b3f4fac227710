// FILE: src/internal/sequence/discoverer_test.go
package sequence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))
}

func TestDiscoverer_FindsSuccessors(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "run_0001.lmd")
	second := filepath.Join(dir, "run_0002.lmd")
	touch(t, first)
	touch(t, second)

	list := NewFileList(first)
	d := NewDiscoverer(list, 5*time.Millisecond, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(ctx)
	}()

	// An already-present successor is picked up without waiting a cycle.
	require.Eventually(t, func() bool { return list.Len() == 2 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, second, list.Last())

	// A file appearing later is found on a subsequent poll.
	third := filepath.Join(dir, "run_0003.lmd")
	touch(t, third)
	require.Eventually(t, func() bool { return list.Len() == 3 },
		2*time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(2), d.Discovered())

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("discoverer did not stop on cancellation")
	}
}

func TestDiscoverer_StopsOnUnparseableName(t *testing.T) {
	list := NewFileList(filepath.Join(t.TempDir(), "noseq.lmd"))
	d := NewDiscoverer(list, 5*time.Millisecond, newTestLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.Run(context.Background())
	}()

	// Terminates alone, without cancellation.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("discoverer did not stop on bad file name")
	}
	assert.Equal(t, 1, list.Len())
	assert.Equal(t, uint64(0), d.Discovered())
}

func TestDiscoverer_ExtrapolatesFromTail(t *testing.T) {
	dir := t.TempDir()
	// The tail is what discovery extrapolates from, not the worker's
	// position: with run_0005 listed last, run_0006 is the candidate.
	sixth := filepath.Join(dir, "run_0006.lmd")
	touch(t, sixth)

	list := NewFileList(
		filepath.Join(dir, "run_0001.lmd"),
		filepath.Join(dir, "run_0005.lmd"),
	)
	d := NewDiscoverer(list, 5*time.Millisecond, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	require.Eventually(t, func() bool { return list.Last() == sixth },
		2*time.Second, 5*time.Millisecond)
}
