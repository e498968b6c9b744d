package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/caet/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-k string   database driver: sqlite or pgx
//	-d string   database DSN (SQLite file path or PostgreSQL DSN)
//	-s string   session signing secret
//	-t int      session token validity, minutes
//	-f string   anti-forgery token value
//	-l string   log level
//	-o string   upload backend: dir or s3
//	-w string   upload directory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// Only these flags are looked at (flagx.FilterArgs); -c/-config is handled
// by parseFile.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-k", "-d", "-s", "-t", "-f", "-l", "-o", "-w", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionTokenValidityDuration := fs.Int("t", int(config.SessionTokenValidityDuration.Minutes()), "session_token_validity_duration (in minutes)")

	fs.StringVar(&config.CSRFToken, "f", config.CSRFToken, "anti-forgery token")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.UploadBackend, "o", config.UploadBackend, "upload backend (dir or s3)")
	fs.StringVar(&config.UploadDir, "w", config.UploadDir, "upload directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is whole minutes; a finer value from the config file survives unless -t is given.
	if flagx.Passed(fs, "t") {
		config.SessionTokenValidityDuration = time.Duration(*sessionTokenValidityDuration) * time.Minute
	}
}
