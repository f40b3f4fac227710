// FILE: src/internal/config/config.go
package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Ingest  IngestConfig  `toml:"ingest"`
	Status  StatusConfig  `toml:"status"`
	Logging LoggingConfig `toml:"logging"`
}

type IngestConfig struct {
	// Soft cap on buffered events before the producer throttles.
	BufferCapacity int64 `toml:"buffer_capacity"`

	// Producer wait when the source has no event ready, in milliseconds.
	IdleBackoffMs int64 `toml:"idle_backoff_ms"`

	// Producer wait per iteration over capacity, in milliseconds.
	BackpressureDelayMs int64 `toml:"backpressure_delay_ms"`

	// Poll interval for successor recording files, in milliseconds.
	DiscoverIntervalMs int64 `toml:"discover_interval_ms"`

	// Fragment occurrences logged per session before suppression.
	FragmentLogCap int64 `toml:"fragment_log_cap"`
}

type StatusConfig struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    int64  `toml:"port"`

	// PHC-format Argon2id hash of the bearer token (see token-gen).
	// Empty disables authentication.
	TokenHash string `toml:"token_hash"`
}

type LoggingConfig struct {
	Level     string `toml:"level"`  // debug, info, warn, error
	Output    string `toml:"output"` // stdout, stderr, file, none
	Directory string `toml:"directory"`
	Name      string `toml:"name"`
}

func defaults() *Config {
	return &Config{
		Ingest: IngestConfig{
			BufferCapacity:      100000,
			IdleBackoffMs:       1,
			BackpressureDelayMs: 50,
			DiscoverIntervalMs:  100,
			FragmentLogCap:      10,
		},
		Status: StatusConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    8440,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Name:   "daqingest",
		},
	}
}

func GetConfigPath() string {
	if configFile := os.Getenv("DAQINGEST_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("DAQINGEST_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("DAQINGEST_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "daqingest.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "daqingest.toml")
	}

	return "daqingest.toml"
}
