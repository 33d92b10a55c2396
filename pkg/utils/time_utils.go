package utils

import (
	"regexp"
	"time"
)

// clockPattern accepts zero-padded 24-hour times only, so "9:00" and "24:00" are rejected.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func IsValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ClockString renders t as "HH:MM" in loc. A nil loc keeps t's own location.
func ClockString(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds returns the zero time for t<=0 so callers can render "N/A".
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatDisplayDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02 Jan 2006")
}
