// FILE: src/internal/sequence/list.go
package sequence

import "sync"

// FileList is the ordered set of recording files for one session. The
// discoverer appends to the tail while the ingestion worker reads and
// advances; entries already consumed are never removed. The list carries
// its own lock so file discovery latency never couples to event draining.
type FileList struct {
	mu    sync.Mutex
	files []string
}

func NewFileList(files ...string) *FileList {
	l := &FileList{}
	l.files = append(l.files, files...)
	return l
}

// Append adds one file to the tail.
func (l *FileList) Append(path string) {
	l.mu.Lock()
	l.files = append(l.files, path)
	l.mu.Unlock()
}

// At returns the entry at index i, or false when i is past the tail.
func (l *FileList) At(i int) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.files) {
		return "", false
	}
	return l.files[i], true
}

// Last returns the tail entry, or "" on an empty list.
func (l *FileList) Last() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.files) == 0 {
		return ""
	}
	return l.files[len(l.files)-1]
}

func (l *FileList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.files)
}

// Snapshot returns a copy of the current list.
func (l *FileList) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.files))
	copy(out, l.files)
	return out
}
