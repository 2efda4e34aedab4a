package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/playerprofile/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so both "90s" and integer nanoseconds are accepted.
// Absent or zero fields leave the current value untouched.
type JsonConfig struct {
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	StoreTimeout     timex.Duration `json:"store_timeout"`
	SecretKey        string         `json:"secret_key"`
	SessionValidity  timex.Duration `json:"session_validity"`
	SessionBackend   string         `json:"session_backend"`
	RedisURL         string         `json:"redis_url"`
	SweepSchedule    string         `json:"sweep_schedule"`
	BlobBackend      string         `json:"blob_backend"`
	BlobDir          string         `json:"blob_dir"`
	BlobPublicPrefix string         `json:"blob_public_prefix"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	HeadshotMaxBytes int64          `json:"headshot_max_bytes"`
	LogFormat        string         `json:"log_format"`
	LogLevel         string         `json:"log_level"`
}

// parseJSON overlays the JSON file at path onto config. An empty path is a
// no-op.
func parseJSON(config *Config, path string) error {
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&config.DatabaseDriver, c.DatabaseDriver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.SessionBackend, c.SessionBackend)
	set(&config.RedisURL, c.RedisURL)
	set(&config.SweepSchedule, c.SweepSchedule)
	set(&config.BlobBackend, c.BlobBackend)
	set(&config.BlobDir, c.BlobDir)
	set(&config.BlobPublicPrefix, c.BlobPublicPrefix)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.LogFormat, c.LogFormat)
	set(&config.LogLevel, c.LogLevel)

	if c.StoreTimeout.Duration != 0 {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.SessionValidity.Duration != 0 {
		config.SessionValidity = c.SessionValidity.Duration
	}
	if c.HeadshotMaxBytes != 0 {
		config.HeadshotMaxBytes = c.HeadshotMaxBytes
	}

	return nil
}
