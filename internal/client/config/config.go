package config

import "time"

// Config holds runtime settings for the caet terminal client.
//
// Fields:
//   - ServerURL: base URL of the caet HTTP API.
//   - CSRFToken: the anti-forgery value echoed on mutating requests.
//   - RequestTimeout: per-request timeout of the HTTP client.
type Config struct {
	ServerURL      string
	CSRFToken      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.CSRFToken = "mock-csrf-token"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON/YAML file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
