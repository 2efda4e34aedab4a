package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "PROFILE_"

var lookupEnv = os.LookupEnv

// loadDotEnv exports variables from the given files into the process
// environment. Missing files are skipped; variables already set win.
func loadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// parseEnv overlays PROFILE_* variables onto config.
func parseEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	var errs []error
	dur := func(name string, dst *time.Duration) {
		v, ok := lookup(envPrefix + name)
		if !ok {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
			return
		}
		*dst = d
	}

	str("DATABASE_DRIVER", &config.DatabaseDriver)
	str("DATABASE_DSN", &config.DatabaseDSN)
	dur("STORE_TIMEOUT", &config.StoreTimeout)
	str("SECRET_KEY", &config.SecretKey)
	dur("SESSION_VALIDITY", &config.SessionValidity)
	str("SESSION_BACKEND", &config.SessionBackend)
	str("REDIS_URL", &config.RedisURL)
	str("SWEEP_SCHEDULE", &config.SweepSchedule)
	str("BLOB_BACKEND", &config.BlobBackend)
	str("BLOB_DIR", &config.BlobDir)
	str("BLOB_PUBLIC_PREFIX", &config.BlobPublicPrefix)
	str("S3_ROOT_USER", &config.S3RootUser)
	str("S3_ROOT_PASSWORD", &config.S3RootPassword)
	str("S3_BUCKET", &config.S3Bucket)
	str("S3_REGION", &config.S3Region)
	str("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	str("LOG_FORMAT", &config.LogFormat)
	str("LOG_LEVEL", &config.LogLevel)

	if v, ok := lookup(envPrefix + "HEADSHOT_MAX_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sHEADSHOT_MAX_BYTES: %w", envPrefix, err))
		} else {
			config.HeadshotMaxBytes = n
		}
	}

	return errors.Join(errs...)
}
