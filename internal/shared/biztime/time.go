// Package biztime centralizes wall-clock access. Everything is stored and
// transported in UTC; persistence models keep Unix milliseconds.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToMilli converts t to Unix milliseconds.
func ToMilli(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMilli converts Unix milliseconds back to a UTC time.
func FromMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// FromMilliPtr converts an optional millisecond value.
func FromMilliPtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := FromMilli(*ms)
	return &t
}
