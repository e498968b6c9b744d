package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5000", c.ServerURL)
	assert.Equal(t, "mock-csrf-token", c.CSRFToken)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()
	os.Args = []string{"cmd"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:5000", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FileTimeoutKeptWithoutFlag(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request_timeout: 1500ms\n"), 0o600))

	os.Args = []string{"cmd", "-c", path}
	assert.Equal(t, 1500*time.Millisecond, LoadConfig().RequestTimeout)

	os.Args = []string{"cmd", "-c", path, "-t", "4"}
	assert.Equal(t, 4*time.Second, LoadConfig().RequestTimeout)
}
