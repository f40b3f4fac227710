// FILE: src/internal/sequence/successor.go
package sequence

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Successor computes the next file name in a numbered recording series.
// The convention is prefix_NUMBER.ext with a zero-padded decimal number
// between the last underscore and the extension; the successor keeps the
// padding width and grows it on overflow (run_9999.lmd -> run_10000.lmd).
func Successor(path string) (string, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	sep := strings.LastIndex(stem, "_")
	if sep < 0 {
		return "", fmt.Errorf("no '_' in file name %q, expected prefix_NUMBER%s", base, ext)
	}

	numberPart := stem[sep+1:]
	number, err := strconv.ParseUint(numberPart, 10, 32)
	if err != nil {
		return "", fmt.Errorf("file name %q carries no sequence number: %w", base, err)
	}

	next := fmt.Sprintf("%s_%0*d%s", stem[:sep], len(numberPart), number+1, ext)
	return filepath.Join(filepath.Dir(path), next), nil
}
