// Package timeutil provides utility functions for working with time values.
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

const secondsInAMinute = 60

// keyLayout is a fixed-width UTC layout so that keys sort chronologically.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val int) (mins, secs int) {
	if val < 0 {
		val = 0
	}

	return val / secondsInAMinute, val % secondsInAMinute
}

// FormatClock formats a seconds value as MM:SS.
func FormatClock(seconds int) string {
	m, s := SecsToMinsAndSecs(seconds)

	return fmt.Sprintf("%02d:%02d", m, s)
}

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// RoundToEnd resets the given time to the end of the day.
func RoundToEnd(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		23,
		59,
		59,
		0,
		t.Location(),
	)
}

// ToKey converts a time value to a sortable database key.
func ToKey(t time.Time) []byte {
	return []byte(t.UTC().Format(keyLayout))
}

// FromKey parses a key produced by ToKey.
func FromKey(b []byte) (time.Time, error) {
	return time.Parse(keyLayout, string(b))
}

// FromStr parses a date expression such as "2 days ago", "yesterday 9am" or
// "2025-03-01 14:00" relative to now.
func FromStr(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, errParsingDate.Fmt(s).Wrap(err)
	}

	return dt.Time, nil
}
