// FILE: src/cmd/daqingest/bootstrap.go
package main

import (
	"fmt"
	"strings"
	"time"

	"daqingest/src/internal/adapter"
	"daqingest/src/internal/client"
	"daqingest/src/internal/config"
	"daqingest/src/internal/core"
	"daqingest/src/internal/service"

	"github.com/lixenwraith/log"
)

// bootstrapClient builds the client over the synthetic adapter and opens
// the configured source.
func bootstrapClient(cfg *config.Config, fc *FlagConfig) (*client.Client, error) {
	synthetic := adapter.NewSynthetic(adapter.SyntheticOptions{
		TotalRecords:     fc.Total,
		RecordsPerSecond: fc.Rate,
		SubEvents:        fc.SubEvents,
		PayloadWords:     fc.PayloadWords,
		FragmentEvery:    fc.FragmentEvery,
	}, logger)

	c := client.New(synthetic, client.Options{
		BufferCapacity:    cfg.Ingest.BufferCapacity,
		IdleBackoff:       time.Duration(cfg.Ingest.IdleBackoffMs) * time.Millisecond,
		BackpressureDelay: time.Duration(cfg.Ingest.BackpressureDelayMs) * time.Millisecond,
		DiscoverInterval:  time.Duration(cfg.Ingest.DiscoverIntervalMs) * time.Millisecond,
		FragmentLogCap:    uint64(cfg.Ingest.FragmentLogCap),
	}, logger)

	if fc.Files != "" {
		files := strings.Split(fc.Files, ",")
		for i := range files {
			files[i] = strings.TrimSpace(files[i])
		}
		if err := c.ConnectFiles(files, fc.Follow); err != nil {
			return nil, fmt.Errorf("connect to file list: %w", err)
		}
		return c, nil
	}

	kind, err := core.ParseKind(fc.Kind)
	if err != nil {
		return nil, err
	}
	if err := c.Connect(fc.Source, kind, fc.Follow); err != nil {
		return nil, fmt.Errorf("connect to %q: %w", fc.Source, err)
	}
	return c, nil
}

// bootstrapStatusServer starts the status endpoint when enabled.
func bootstrapStatusServer(cfg *config.Config, c *client.Client) (*service.StatusServer, error) {
	if !cfg.Status.Enabled {
		return nil, nil
	}

	srv := service.NewStatusServer(c, service.StatusOptions{
		Host:      cfg.Status.Host,
		Port:      cfg.Status.Port,
		TokenHash: cfg.Status.TokenHash,
	}, logger)

	if err := srv.Start(); err != nil {
		return nil, err
	}
	return srv, nil
}

// initializeLogger sets up the logger based on configuration
func initializeLogger(cfg *config.Config, fc *FlagConfig) error {
	logger = log.NewLogger()

	if fc.Quiet {
		return logger.ApplyConfigString(
			"disable_file=true",
			"enable_stdout=false",
			"level=255")
	}

	level := cfg.Logging.Level
	if fc.LogLevel != "" {
		level = fc.LogLevel
	}
	levelValue, err := parseLogLevel(level)
	if err != nil {
		return err
	}
	configArgs := []string{fmt.Sprintf("level=%d", levelValue)}

	outputMode := cfg.Logging.Output
	if fc.LogOutput != "" {
		outputMode = fc.LogOutput
	}

	switch outputMode {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs,
			"enable_stdout=false",
			fmt.Sprintf("directory=%s", cfg.Logging.Directory),
			fmt.Sprintf("name=%s", cfg.Logging.Name))

	default:
		return fmt.Errorf("invalid log output mode: %s", outputMode)
	}

	return logger.ApplyConfigString(configArgs...)
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
