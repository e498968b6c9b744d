package server

import (
	"bytes"
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/caet/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	dir := t.TempDir()
	c.DatabaseDSN = filepath.Join(dir, "caet.db")
	c.UploadDir = filepath.Join(dir, "uploads")
	c.EndpointAddrHTTP = "127.0.0.1:0"
	return c
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logOutput
	logOutput = &buf
	t.Cleanup(func() { logOutput = orig })
	return &buf
}

func TestNewApp_SQLiteDir(t *testing.T) {
	logs := captureLogs(t)

	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer app.db.Close()

	assert.NotNil(t, app.userService)
	assert.NotNil(t, app.fileService)
	assert.Contains(t, logs.String(), "public default secrets; override -s and -f")

	var n int
	require.NoError(t, app.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}

func TestNewApp_Errors(t *testing.T) {
	captureLogs(t)

	tests := []struct {
		name string
		mod  func(*config.Config)
	}{
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"bad driver", func(c *config.Config) { c.DatabaseDriver = "mysql" }},
		{"bad upload backend", func(c *config.Config) { c.UploadBackend = "ftp" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testConfig(t)
			tt.mod(c)
			_, err := NewApp(context.Background(), c)
			assert.Error(t, err)
		})
	}
}

func TestNewApp_S3BackendBuildsClientWithoutNetwork(t *testing.T) {
	captureLogs(t)
	c := testConfig(t)
	c.UploadBackend = config.UploadBackendS3

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	_ = app.db.Close()
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	captureLogs(t)
	c := testConfig(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	c.EndpointAddrHTTP = ln.Addr().String()
	require.NoError(t, ln.Close())

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Error(t, app.db.Ping())
}
