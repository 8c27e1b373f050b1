// Package calendar handles calendar dates as UTC-midnight time values.
package calendar

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date truncates t to its calendar day in t's own location and returns it at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar date.
func Today(now func() time.Time) time.Time {
	if now == nil {
		now = time.Now
	}
	return Date(now())
}

// ParseDate accepts plain dates and provider timestamps. Timestamps keep their own calendar day.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return Date(parsed), true
		}
	}
	return time.Time{}, false
}

// DaysBetween returns the whole days from earlier to later. Negative when later is before earlier.
func DaysBetween(earlier, later time.Time) int {
	return int(Date(later).Sub(Date(earlier)).Hours() / 24)
}

func Format(t time.Time) string {
	return t.Format(DateLayout)
}
