// FILE: src/cmd/daqingest/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daqingest/src/internal/config"
	"daqingest/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	// Parse flags first to get quiet mode early
	fc, err := ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	InitOutputHandler(fc.Quiet)

	if fc.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if fc.ConfigFile != "" {
		os.Setenv("DAQINGEST_CONFIG_FILE", fc.ConfigFile)
	}

	cfg, err := config.LoadWithCLI(os.Args[1:])
	if err != nil {
		FatalError(1, "Failed to load config: %v\n", err)
	}

	if err := initializeLogger(cfg, fc); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	logger.Info("msg", "daqingest starting",
		"version", version.String(),
		"config_file", fc.ConfigFile,
		"buffer_capacity", cfg.Ingest.BufferCapacity)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	c, err := bootstrapClient(cfg, fc)
	if err != nil {
		logger.Error("msg", "Failed to connect", "error", err)
		FatalError(1, "Failed to connect: %v\n", err)
	}

	statusServer, err := bootstrapStatusServer(cfg, c)
	if err != nil {
		logger.Error("msg", "Failed to start status server", "error", err)
		c.Disconnect()
		FatalError(1, "Failed to start status server: %v\n", err)
	}

	cons := newConsumer(c)
	go cons.Run(ctx, 1000, 10*time.Millisecond)
	go statusReporter(ctx, c, cons)

	Print("Ingesting from %s, press Ctrl+C to stop\n", c.SourceName())

	<-sigChan
	logger.Info("msg", "Shutdown signal received, starting graceful shutdown...")
	cancel()

	if statusServer != nil {
		statusServer.Stop()
	}

	// Disconnect joins the workers; bound the wait so a stuck adapter
	// cannot hang shutdown forever.
	done := make(chan struct{})
	go func() {
		c.Disconnect()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete",
			"events_received", c.EventsReceived(),
			"events_drained", cons.Drained())
	case <-time.After(10 * time.Second):
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit")
		os.Exit(1)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
