package calendar

import (
	"errors"
	"fmt"
	"time"

	"staysia/internal/domain/shared/daterange"
)

var ErrInvalidMonth = errors.New("calendar: invalid month")

// MonthInfo describes the grid of a month. FirstWeekday counts from Sunday = 0.
type MonthInfo struct {
	Count        int
	FirstWeekday int
}

func DaysInMonth(year int, month time.Month) MonthInfo {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return MonthInfo{Count: last.Day(), FirstWeekday: int(first.Weekday())}
}

// IsPast reports whether day is strictly before today. Today itself is selectable.
func IsPast(day, today time.Time) bool {
	return daterange.Day(day).Before(daterange.Day(today))
}

func IsWeekend(day time.Time) bool {
	return daterange.IsWeekend(day)
}

// Month is a calendar month. Navigation is unbounded in both directions.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts "2025-10".
func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, raw)
	}
	return MonthOf(t), nil
}

func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (m Month) Offset(n int) Month {
	return MonthOf(m.First().AddDate(0, n, 0))
}

func (m Month) Next() Month { return m.Offset(1) }

func (m Month) Prev() Month { return m.Offset(-1) }

func (m Month) Info() MonthInfo { return DaysInMonth(m.Year, m.Month) }

func (m Month) Day(n int) time.Time {
	return time.Date(m.Year, m.Month, n, 0, 0, 0, 0, time.UTC)
}

func (m Month) String() string {
	return m.First().Format("2006-01")
}

// Label is the English heading shown above the grid, e.g. "October 2025".
func (m Month) Label() string {
	return m.First().Format("January 2006")
}
