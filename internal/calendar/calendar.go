// Package calendar converts between instants and calendar days.
//
// A calendar day is a YYYY-MM-DD string interpreted in the process's local
// time zone. Stored dates (task schedules, habit completions, day rows) use
// this form; instants (session start times) are compared against the local
// bounds of a day.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the calendar day format.
const Layout = "2006-01-02"

// Format returns the calendar day containing t in the local zone.
func Format(t time.Time) string {
	return t.In(time.Local).Format(Layout)
}

// Parse returns local midnight of the given calendar day.
func Parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing calendar day %q: %w", date, err)
	}
	return t, nil
}

// Valid reports whether date is a well-formed calendar day.
func Valid(date string) bool {
	_, err := time.ParseInLocation(Layout, date, time.Local)
	return err == nil
}

// DayBounds returns the first and last millisecond of the local day containing t.
func DayBounds(t time.Time) (start, end time.Time) {
	local := t.In(time.Local)
	y, m, d := local.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	end = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local)
	return start, end
}

// Short renders a calendar day as "Jan 2".
func Short(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.Format("Jan 2"), nil
}
