package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/caet/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the server (default from Config)
//	-f string   anti-forgery token (default from Config)
//	-t int      request timeout in seconds (default from Config)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the caet server")
	fs.StringVar(&cfg.CSRFToken, "f", cfg.CSRFToken, "anti-forgery token")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if flagx.Passed(fs, "t") {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
}
