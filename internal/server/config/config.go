// Package config handles configuration for the profile service: defaults,
// environment (optionally from a .env file), a JSON file and command-line
// flags, applied in that order.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/flagx"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseDriver / DatabaseDSN: "pgx" (PostgreSQL) or "sqlite" and its DSN.
//   - StoreTimeout: upper bound for every unit of work against a store.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use test defaults in prod.
//   - SessionValidity: absolute session lifetime.
//   - SessionBackend / RedisURL: where session records live ("sql" or "redis").
//   - SweepSchedule: cron spec for deleting expired SQL sessions.
//   - BlobBackend: headshot storage, "fs" (BlobDir, BlobPublicPrefix) or "s3" (S3*).
//   - HeadshotMaxBytes: largest accepted headshot upload.
//   - LogFormat / LogLevel: "json" or "console"; debug, info, warn or error.
type Config struct {
	DatabaseDriver   string        `json:"database_driver" validate:"oneof=pgx postgres sqlite sqlite3"`
	DatabaseDSN      string        `json:"database_dsn" validate:"required"`
	StoreTimeout     time.Duration `json:"store_timeout" validate:"gt=0"`
	SecretKey        string        `json:"secret_key" validate:"required"`
	SessionValidity  time.Duration `json:"session_validity" validate:"gt=0"`
	SessionBackend   string        `json:"session_backend" validate:"oneof=sql redis"`
	RedisURL         string        `json:"redis_url" validate:"required_if=SessionBackend redis"`
	SweepSchedule    string        `json:"sweep_schedule" validate:"required"`
	BlobBackend      string        `json:"blob_backend" validate:"oneof=fs s3"`
	BlobDir          string        `json:"blob_dir" validate:"required_if=BlobBackend fs"`
	BlobPublicPrefix string        `json:"blob_public_prefix"`
	S3RootUser       string        `json:"s3_root_user"`
	S3RootPassword   string        `json:"s3_root_password"`
	S3Bucket         string        `json:"s3_bucket" validate:"required_if=BlobBackend s3"`
	S3Region         string        `json:"s3_region"`
	S3BaseEndpoint   string        `json:"s3_base_endpoint"`
	HeadshotMaxBytes int64         `json:"headshot_max_bytes" validate:"gt=0"`
	LogFormat        string        `json:"log_format" validate:"oneof=json console"`
	LogLevel         string        `json:"log_level" validate:"oneof=debug info warn error"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "playerprofile.db"
	c.StoreTimeout = 5 * time.Second
	c.SecretKey = "secretKey"
	c.SessionValidity = 24 * time.Hour
	c.SessionBackend = "sql"
	c.RedisURL = "redis://localhost:6379/0"
	c.SweepSchedule = "@every 10m"
	c.BlobBackend = "fs"
	c.BlobDir = "static"
	c.BlobPublicPrefix = "/static/"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "playerprofile"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.HeadshotMaxBytes = 5 << 20
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// Validate reports the first group of invalid settings.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load applies defaults, the .env file, PROFILE_* variables and the JSON file
// at jsonPath (skipped when empty). Command-line flags are not read.
func Load(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookupEnv); err != nil {
		return nil, err
	}
	if err := parseJSON(cfg, jsonPath); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfig builds the daemon configuration from args (usually
// os.Args[1:]): everything Load does, then the command-line flags.
func LoadConfig(args []string) (*Config, error) {
	cfg, err := Load(flagx.ConfigFile(args))
	if err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
