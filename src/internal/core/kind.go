// FILE: src/internal/core/kind.go
package core

import (
	"fmt"
	"strings"
)

// SourceKind selects how an acquisition source identifier is interpreted.
type SourceKind int

const (
	// KindStream connects to a live event server.
	KindStream SourceKind = iota
	// KindFile opens an on-disk recording file.
	KindFile
	// KindAuto detects the kind from the identifier.
	KindAuto
)

// Minimum identifier length for auto-detection; anything shorter cannot
// carry a recording file extension.
const minAutoDetectLen = 5

func (k SourceKind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindFile:
		return "file"
	case KindAuto:
		return "auto"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseKind converts a config string to a SourceKind.
func ParseKind(s string) (SourceKind, error) {
	switch strings.ToLower(s) {
	case "stream":
		return KindStream, nil
	case "file":
		return KindFile, nil
	case "auto", "automatic", "":
		return KindAuto, nil
	default:
		return KindAuto, fmt.Errorf("unknown source kind: %q", s)
	}
}

// ResolveKind collapses KindAuto to a concrete kind. Identifiers ending in
// the recording file extension (case-insensitive "lmd") resolve to KindFile,
// everything else to KindStream. Auto-detection needs at least 5 characters
// to work with.
func ResolveKind(identifier string, kind SourceKind) (SourceKind, error) {
	switch kind {
	case KindFile, KindStream:
		return kind, nil
	case KindAuto:
		if len(identifier) < minAutoDetectLen {
			return kind, fmt.Errorf("source identifier %q too short for auto-detection (need at least %d characters)",
				identifier, minAutoDetectLen)
		}
		if strings.EqualFold(identifier[len(identifier)-3:], "lmd") {
			return KindFile, nil
		}
		return KindStream, nil
	default:
		return kind, fmt.Errorf("invalid source kind: %d", int(kind))
	}
}
