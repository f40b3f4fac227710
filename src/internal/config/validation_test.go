// FILE: src/internal/config/validation_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, defaults().validate())
}

func TestIngestValidation(t *testing.T) {
	cfg := defaults()
	cfg.Ingest.BufferCapacity = -1
	assert.Error(t, cfg.validate())

	cfg = defaults()
	cfg.Ingest.DiscoverIntervalMs = 0
	assert.Error(t, cfg.validate())

	cfg = defaults()
	cfg.Ingest.IdleBackoffMs = 120000
	assert.Error(t, cfg.validate())
}

func TestStatusValidation(t *testing.T) {
	cfg := defaults()
	cfg.Status.Enabled = true
	cfg.Status.Port = 0
	assert.Error(t, cfg.validate())

	// Disabled status skips port checks entirely.
	cfg.Status.Enabled = false
	assert.NoError(t, cfg.validate())

	cfg = defaults()
	cfg.Status.Enabled = true
	cfg.Status.TokenHash = "short"
	assert.Error(t, cfg.validate())
}

func TestLoggingValidation(t *testing.T) {
	cfg := defaults()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.validate())

	cfg = defaults()
	cfg.Logging.Output = "syslog"
	assert.Error(t, cfg.validate())

	cfg = defaults()
	cfg.Logging.Output = "file"
	cfg.Logging.Directory = ""
	assert.Error(t, cfg.validate())
}
