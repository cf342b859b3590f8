package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "embedded", c.Backend)
	assert.NotEmpty(t, c.DatabasePath)
	assert.Equal(t, "http://127.0.0.1:3001", c.RelayBaseURL)
	assert.Equal(t, 60*time.Second, c.GenerationTimeout)
	assert.Equal(t, 100*time.Millisecond, c.BackendLatency)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "embedded", cfg.Backend)
	assert.Equal(t, 60*time.Second, cfg.GenerationTimeout)
}
