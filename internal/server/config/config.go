// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import "time"

// Upload backends.
const (
	UploadBackendDir = "dir"
	UploadBackendS3  = "s3"
)

// Config holds runtime settings for the caet server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP API.
//   - DatabaseDriver / DatabaseDSN: "sqlite" with a file path, or "pgx" with a PostgreSQL DSN.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use the default in prod.
//   - SessionTokenValidityDuration: session lifetime, 24h unless overridden.
//   - CSRFToken: the shared anti-forgery value every mutating request must echo.
//   - LogLevel: debug, info, warn or error.
//   - UploadBackend: "dir" stores uploads in UploadDir, "s3" in S3Bucket.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - Placeholder*: the single account every third-party login resolves to.
type Config struct {
	EndpointAddrHTTP             string
	DatabaseDriver               string
	DatabaseDSN                  string
	SecretKey                    string
	SessionTokenValidityDuration time.Duration
	CSRFToken                    string
	LogLevel                     string
	UploadBackend                string
	UploadDir                    string
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	PlaceholderName              string
	PlaceholderEmail             string
	PlaceholderDOB               string
	PlaceholderPhone             string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey and CSRFToken defaults are public and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":5000"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "caet.db"
	c.SecretKey = "secretKey"
	c.SessionTokenValidityDuration = 24 * time.Hour
	c.CSRFToken = "mock-csrf-token"
	c.LogLevel = "info"
	c.UploadBackend = UploadBackendDir
	c.UploadDir = "uploads"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "caet"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.PlaceholderName = "Google User"
	c.PlaceholderEmail = "google-user@example.com"
	c.PlaceholderDOB = "2000-01-01"
	c.PlaceholderPhone = "1234567890"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON/YAML file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
