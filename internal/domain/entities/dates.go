package entities

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used across all collections.
const DateLayout = "2006-01-02"

// Today returns the current local calendar date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ParseCalendarDate parses a calendar date from either a bare 10-character
// ISO date or a longer ISO-8601 timestamp. Timestamps carrying a zone are
// converted to the local calendar day; naive timestamps are taken as local.
func ParseCalendarDate(s string) (time.Time, error) {
	if len(s) == len(DateLayout) {
		t, err := time.ParseInLocation(DateLayout, s, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDueTime)
		}
		return t, nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			local := t.Local()
			return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: %w", s, ErrInvalidDueTime)
}

// FormatDate renders a time as the calendar-date wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays shifts a YYYY-MM-DD date string by a signed number of days.
// An unparseable input comes back unchanged.
func AddDays(date string, days int) string {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}
