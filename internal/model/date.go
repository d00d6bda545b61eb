package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for scheduled dates.
const DateLayout = "2006-01-02"

// Today returns the current local date in DateLayout form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// TodayIn returns the current date in the named IANA zone, falling back
// to local time when the zone is empty or unknown.
func TodayIn(timezone string) string {
	if timezone == "" {
		return Today()
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Today()
	}
	return time.Now().In(loc).Format(DateLayout)
}

// ParseDate parses a DateLayout string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// AddDays shifts a DateLayout date by n days. Invalid input is returned
// unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}
