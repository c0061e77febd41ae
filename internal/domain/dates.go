package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a date-only string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

const dateOnlyLayout = "2006-01-02"

// ParseDateOnly parses a YYYY-MM-DD string as midnight UTC.
func ParseDateOnly(s string) (time.Time, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t.UTC(), nil
}

// Day truncates an instant to its UTC calendar date. Every date used as a map
// key in this package goes through Day so keys compare equal.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a normalized date back to YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return Day(t).Format(dateOnlyLayout)
}

// NightsBetween returns the number of nights in [from,to), rounded up and
// clamped to zero. Callers reject zero-night ranges.
func NightsBetween(from, to time.Time) int {
	d := Day(to).Sub(Day(from))
	if d <= 0 {
		return 0
	}
	return int((d + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
}

// EachNight expands [from,to) into the calendar dates the stay occupies,
// exclusive of the checkout date. Adjacent stays therefore never share a
// night.
func EachNight(from, to time.Time) []time.Time {
	start, end := Day(from), Day(to)
	if !start.Before(end) {
		return nil
	}
	nights := make([]time.Time, 0, NightsBetween(start, end))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}
	return nights
}

// RangesOverlap reports whether two half-open date ranges intersect.
func RangesOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return aFrom.Before(bTo) && bFrom.Before(aTo)
}
