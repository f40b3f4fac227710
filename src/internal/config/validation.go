// FILE: src/internal/config/validation.go
package config

import (
	"fmt"
)

func (c *Config) validate() error {
	if err := c.Ingest.validate(); err != nil {
		return fmt.Errorf("ingest config: %w", err)
	}
	if err := c.Status.validate(); err != nil {
		return fmt.Errorf("status config: %w", err)
	}
	if err := c.Logging.validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (c *IngestConfig) validate() error {
	if c.BufferCapacity < 0 {
		return fmt.Errorf("buffer_capacity must not be negative: %d", c.BufferCapacity)
	}
	if c.IdleBackoffMs < 0 || c.IdleBackoffMs > 60000 {
		return fmt.Errorf("idle_backoff_ms out of range [0, 60000]: %d", c.IdleBackoffMs)
	}
	if c.BackpressureDelayMs < 0 || c.BackpressureDelayMs > 60000 {
		return fmt.Errorf("backpressure_delay_ms out of range [0, 60000]: %d", c.BackpressureDelayMs)
	}
	if c.DiscoverIntervalMs < 1 || c.DiscoverIntervalMs > 600000 {
		return fmt.Errorf("discover_interval_ms out of range [1, 600000]: %d", c.DiscoverIntervalMs)
	}
	if c.FragmentLogCap < 0 {
		return fmt.Errorf("fragment_log_cap must not be negative: %d", c.FragmentLogCap)
	}
	return nil
}

func (c *StatusConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.TokenHash != "" && len(c.TokenHash) < 20 {
		return fmt.Errorf("token_hash is not a PHC-format hash")
	}
	return nil
}

func (c *LoggingConfig) validate() error {
	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "file": true, "none": true,
	}
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid log output mode: %s", c.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[c.Level] {
		return fmt.Errorf("invalid log level: %s", c.Level)
	}

	if c.Output == "file" && c.Directory == "" {
		return fmt.Errorf("file output requires a log directory")
	}
	return nil
}
