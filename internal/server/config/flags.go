package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/flagx"
)

var serverFlags = []string{
	"-q", "-d", "-w", "-s", "-t", "-k", "-r", "-x",
	"-f", "-l", "-u", "-p", "-b", "-g", "-e", "-m", "-j", "-v",
}

// parseFlags overlays command-line flags onto config.
//
// Supported flags (short forms):
//
//	-q string   database driver ("pgx" or "sqlite")
//	-d string   database DSN
//	-w duration store timeout (e.g. "5s")
//	-s string   session token HMAC secret key
//	-t int      session validity, minutes
//	-k string   session backend ("sql" or "redis")
//	-r string   Redis URL
//	-x string   expired-session sweep schedule (cron spec)
//	-f string   headshot blob backend ("fs" or "s3")
//	-l string   headshot directory for the fs backend
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-m int      headshot size limit, bytes
//	-j string   log format ("json" or "console")
//	-v string   log level
//
// Only these flags are looked at (see flagx.FilterArgs), so args may carry
// flags meant for other components.
func parseFlags(config *Config, args []string) error {
	filtered := flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDriver, "q", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.DurationVar(&config.StoreTimeout, "w", config.StoreTimeout, "store timeout")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	sessionValidity := fs.Int("t", int(config.SessionValidity.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.SessionBackend, "k", config.SessionBackend, "session backend")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "Redis URL")
	fs.StringVar(&config.SweepSchedule, "x", config.SweepSchedule, "session sweep schedule")
	fs.StringVar(&config.BlobBackend, "f", config.BlobBackend, "headshot blob backend")
	fs.StringVar(&config.BlobDir, "l", config.BlobDir, "headshot directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.Int64Var(&config.HeadshotMaxBytes, "m", config.HeadshotMaxBytes, "headshot size limit (bytes)")
	fs.StringVar(&config.LogFormat, "j", config.LogFormat, "log format")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	config.SessionValidity = time.Duration(*sessionValidity) * time.Minute
	return nil
}
