package utils

import (
	"medimarket-service/internal/pkg/constvars"
	"time"
)

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ParseDateIn parses a YYYY-MM-DD date as midnight in loc.
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constvars.DateLayout, value, loc)
}

// ParseClock parses HH:MM into minutes since midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse(constvars.ClockLayout, value)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsDateNotBefore reports whether the calendar date of value is on or after
// the calendar date of now, ignoring the time of day.
func IsDateNotBefore(value string, now time.Time) bool {
	date, err := ParseDateIn(value, now.Location())
	if err != nil {
		return false
	}
	return !date.Before(StartOfDay(now))
}
