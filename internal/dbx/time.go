package dbx

import "time"

// Timestamps are stored as BIGINT unix milliseconds in every dialect.

func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
