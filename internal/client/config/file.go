package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/caet/internal/flagx"
	"github.com/dmitrijs2005/caet/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the client configuration.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	CSRFToken      *string         `json:"csrf_token" yaml:"csrf_token"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// parseFile overlays Config with the file named by -c/-config (YAML for
// .yaml/.yml, JSON otherwise). Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.CSRFToken != nil {
		cfg.CSRFToken = *fc.CSRFToken
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
