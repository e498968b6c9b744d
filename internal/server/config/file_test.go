package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, dir, "cfg.json", map[string]any{
			"endpoint_addr_http":              "www.example:9000",
			"database_driver":                 "pgx",
			"database_dsn":                    "postgres://db",
			"secret_key":                      "my_secret_key",
			"session_token_validity_duration": "12h",
			"csrf_token":                      "csrf",
			"upload_backend":                  "s3",
			"s3_bucket":                       "bucket",
			"placeholder_email":               "ext@example.com",
		})
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "pgx", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 12*time.Hour, cfg.SessionTokenValidityDuration)
		assert.Equal(t, "csrf", cfg.CSRFToken)
		assert.Equal(t, "s3", cfg.UploadBackend)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, "ext@example.com", cfg.PlaceholderEmail)

		// keys absent from the file keep their defaults
		assert.Equal(t, "uploads", cfg.UploadDir)
		assert.Equal(t, "Google User", cfg.PlaceholderName)
	})

	t.Run("loads from yaml", func(t *testing.T) {
		path := filepath.Join(dir, "cfg.yaml")
		yml := "endpoint_addr_http: \":7000\"\nsession_token_validity_duration: 90m\nupload_dir: /data/up\n"
		require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, ":7000", cfg.EndpointAddrHTTP)
		assert.Equal(t, 90*time.Minute, cfg.SessionTokenValidityDuration)
		assert.Equal(t, "/data/up", cfg.UploadDir)
		assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", SecretKey: "key"}
		parseFile(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, "key", cfg.SecretKey)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
