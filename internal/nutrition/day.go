package nutrition

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date format shared with the API
	DateLayout = "2006-01-02"

	// ClockLayout is the wall clock format shown next to meals
	ClockLayout = "15:04"
)

// RangeError reports a date range whose end precedes its start.
type RangeError struct {
	From string
	To   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid date range: %s is after %s", e.From, e.To)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, orLocal(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	return t, nil
}

// DayBounds returns [start, end) of the calendar day in loc. The end is the
// next midnight, so days with a DST shift are 23 or 25 hours long.
func DayBounds(date string, loc *time.Location) (start, end time.Time, err error) {
	start, err = ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, start.AddDate(0, 0, 1), nil
}

// DateOf returns the calendar date of t in loc.
func DateOf(t time.Time, loc *time.Location) string {
	return t.In(orLocal(loc)).Format(DateLayout)
}

// ClockOf returns the HH:MM wall clock of t in loc.
func ClockOf(t time.Time, loc *time.Location) string {
	return t.In(orLocal(loc)).Format(ClockLayout)
}

// FormatDate formats t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}

	return loc
}
