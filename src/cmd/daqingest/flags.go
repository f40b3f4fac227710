// FILE: src/cmd/daqingest/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
)

// Parsed command-line flags
type FlagConfig struct {
	ConfigFile  string
	ShowVersion bool
	Quiet       bool

	Source string
	Kind   string
	Files  string
	Follow bool

	// Synthetic source shape
	Rate          float64
	Total         uint64
	SubEvents     int
	PayloadWords  int
	FragmentEvery uint64

	LogLevel  string
	LogOutput string
}

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "daqingest - DAQ event ingestion harness\n\n")
	fmt.Fprintf(os.Stderr, "Exercises the ingestion pipeline against a synthetic acquisition source.\n")
	fmt.Fprintf(os.Stderr, "Embedding applications supply a real source adapter instead.\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "General:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress console output\n")
	fmt.Fprintf(os.Stderr, "\nSource:\n")
	fmt.Fprintf(os.Stderr, "  -source string\n\tSource identifier (file path or host)\n")
	fmt.Fprintf(os.Stderr, "  -kind string\n\tSource kind: file, stream, auto\n")
	fmt.Fprintf(os.Stderr, "  -files string\n\tComma-separated ordered recording file list\n")
	fmt.Fprintf(os.Stderr, "  -follow\n\tFollow numbered successor files\n")
	fmt.Fprintf(os.Stderr, "\nSynthetic source:\n")
	fmt.Fprintf(os.Stderr, "  -rate float\n\tRecords per second (0 = unlimited)\n")
	fmt.Fprintf(os.Stderr, "  -total uint\n\tRecords before exhaustion (0 = unbounded)\n")
	fmt.Fprintf(os.Stderr, "  -subevents int\n\tSub-events per record\n")
	fmt.Fprintf(os.Stderr, "  -words int\n\tPayload words per sub-event\n")
	fmt.Fprintf(os.Stderr, "  -fragment-every uint\n\tYield a fragment every Nth fetch (0 = never)\n")
	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: stdout, stderr, file, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
	fmt.Fprintf(os.Stderr, "  DAQINGEST_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  DAQINGEST_CONFIG_DIR   Config directory\n")
}

func ParseFlags() (*FlagConfig, error) {
	fc := &FlagConfig{}

	flag.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	flag.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&fc.Quiet, "quiet", false, "Suppress console output")

	flag.StringVar(&fc.Source, "source", "run_0001.lmd", "Source identifier")
	flag.StringVar(&fc.Kind, "kind", "auto", "Source kind: file, stream, auto")
	flag.StringVar(&fc.Files, "files", "", "Comma-separated recording file list")
	flag.BoolVar(&fc.Follow, "follow", false, "Follow numbered successor files")

	flag.Float64Var(&fc.Rate, "rate", 10000, "Records per second (0 = unlimited)")
	flag.Uint64Var(&fc.Total, "total", 0, "Records before exhaustion (0 = unbounded)")
	flag.IntVar(&fc.SubEvents, "subevents", 1, "Sub-events per record")
	flag.IntVar(&fc.PayloadWords, "words", 8, "Payload words per sub-event")
	flag.Uint64Var(&fc.FragmentEvery, "fragment-every", 0, "Fragment every Nth fetch")

	flag.StringVar(&fc.LogLevel, "log-level", "", "Log level (overrides config)")
	flag.StringVar(&fc.LogOutput, "log-output", "", "Log output (overrides config)")

	flag.Parse()

	if fc.SubEvents < 1 || fc.PayloadWords < 1 {
		return nil, fmt.Errorf("subevents and words must be at least 1")
	}
	return fc, nil
}
