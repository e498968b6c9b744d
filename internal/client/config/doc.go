// Package config loads runtime configuration for the caet terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the server, e.g. http://127.0.0.1:5000
//	-f string   anti-forgery token echoed on mutating requests
//	-t int      request timeout (seconds)
//
// # File schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "csrf_token": "mock-csrf-token",
//	  "request_timeout": "10s"
//	}
package config
