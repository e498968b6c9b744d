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

// FileConfig is the on-disk shape of the configuration. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted. Keys
// absent from the file leave the corresponding Config field untouched.
type FileConfig struct {
	EndpointAddrHTTP             *string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDriver               *string         `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN                  *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    *string         `json:"secret_key" yaml:"secret_key"`
	SessionTokenValidityDuration *timex.Duration `json:"session_token_validity_duration" yaml:"session_token_validity_duration"`
	CSRFToken                    *string         `json:"csrf_token" yaml:"csrf_token"`
	LogLevel                     *string         `json:"log_level" yaml:"log_level"`
	UploadBackend                *string         `json:"upload_backend" yaml:"upload_backend"`
	UploadDir                    *string         `json:"upload_dir" yaml:"upload_dir"`
	S3RootUser                   *string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     *string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	PlaceholderName              *string         `json:"placeholder_name" yaml:"placeholder_name"`
	PlaceholderEmail             *string         `json:"placeholder_email" yaml:"placeholder_email"`
	PlaceholderDOB               *string         `json:"placeholder_dob" yaml:"placeholder_dob"`
	PlaceholderPhone             *string         `json:"placeholder_phone" yaml:"placeholder_phone"`
}

// parseFile overlays values from the file named by -c/-config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. A missing flag
// means nothing is loaded; an unreadable or invalid file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&c.DatabaseDriver, fc.DatabaseDriver)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.SecretKey, fc.SecretKey)
	if fc.SessionTokenValidityDuration != nil {
		c.SessionTokenValidityDuration = fc.SessionTokenValidityDuration.Duration
	}
	setString(&c.CSRFToken, fc.CSRFToken)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.UploadBackend, fc.UploadBackend)
	setString(&c.UploadDir, fc.UploadDir)
	setString(&c.S3RootUser, fc.S3RootUser)
	setString(&c.S3RootPassword, fc.S3RootPassword)
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.PlaceholderName, fc.PlaceholderName)
	setString(&c.PlaceholderEmail, fc.PlaceholderEmail)
	setString(&c.PlaceholderDOB, fc.PlaceholderDOB)
	setString(&c.PlaceholderPhone, fc.PlaceholderPhone)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
