package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayLayout is the ISO calendar-day layout used on the wire and in storage.
const DayLayout = "2006-01-02"

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
	ErrInvalidDay   = errors.New("daterange: invalid calendar day")
)

// DateRange represents a half-open interval [checkIn, checkOut) of calendar days.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return DaysBetween(dr.CheckIn, dr.CheckOut)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = Day(t)
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

// EachNight calls fn for every night of the stay, check-out excluded.
func (dr DateRange) EachNight(fn func(day time.Time)) {
	for d := Day(dr.CheckIn); d.Before(dr.CheckOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// Day truncates t to midnight UTC of its own calendar date.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day in UTC.
func Today(now time.Time) time.Time {
	return Day(now.UTC())
}

// ParseDay parses an ISO day ("2025-10-20"). RFC3339 timestamps are accepted and truncated.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDay
	}
	if t, err := time.Parse(DayLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return Day(t.UTC()), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, raw)
}

// FormatDay renders a day using DayLayout.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return Day(t).Format(DayLayout)
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// IsWeekend reports Friday, Saturday and Sunday nights.
func IsWeekend(day time.Time) bool {
	switch day.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}
