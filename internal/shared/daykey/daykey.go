// Package daykey provides UTC calendar-day bucketing for trial usage
// counters. All storage and transport use UTC day keys (YYYYMMDD); the
// local timezone is only consulted for happy-hour window checks.
package daykey

import (
	"fmt"
	"time"
)

// Layout is the day key time layout (YYYYMMDD).
const Layout = "20060102"

// DayKey identifies a UTC calendar day, e.g. "20260901".
type DayKey string

// FromTime returns the day key for the UTC calendar day containing t.
func FromTime(t time.Time) DayKey {
	return DayKey(t.UTC().Format(Layout))
}

// Parse parses a day key back into the UTC midnight of that day.
func Parse(k DayKey) (time.Time, error) {
	t, err := time.Parse(Layout, string(k))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", k, err)
	}
	return t, nil
}

// IsValid reports whether k is a well-formed day key.
func (k DayKey) IsValid() bool {
	_, err := Parse(k)
	return err == nil
}

// String returns the string representation of the day key.
func (k DayKey) String() string {
	return string(k)
}

// MinuteOfDay returns the minute of day (0-1439) for t in its own location.
// Happy-hour windows are expressed in the device's local time, so callers
// pass a local-time value here.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
