package repository

import (
	"time"
)

// recordTimeLayout is the createdAt format written to persisted records.
const recordTimeLayout = time.RFC3339Nano

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseRecordTime accepts RFC 3339 timestamps with or without fractional
// seconds, including the millisecond form browsers emit.
func parseRecordTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// floatPtr returns a pointer to v.
func floatPtr(v float64) *float64 {
	return &v
}
