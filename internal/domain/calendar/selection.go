package calendar

import (
	"time"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/daterange"
)

type Phase string

const (
	PhaseEmpty      Phase = "empty"
	PhaseHasCheckIn Phase = "has_check_in"
	PhaseComplete   Phase = "complete"
)

// StatusFunc resolves the pricing status of a day.
type StatusFunc func(day time.Time) pricing.Status

// Selection is the two-click check-in/check-out state machine.
// CheckOut is only ever set together with an earlier CheckIn.
type Selection struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`

	onComplete func(daterange.DateRange)
}

// OnRangeComplete registers fn to be called once per transition into the complete phase.
func (s *Selection) OnRangeComplete(fn func(daterange.DateRange)) {
	s.onComplete = fn
}

func (s Selection) Phase() Phase {
	switch {
	case s.CheckIn.IsZero():
		return PhaseEmpty
	case s.CheckOut.IsZero():
		return PhaseHasCheckIn
	default:
		return PhaseComplete
	}
}

// Range returns the selected stay when the selection is complete.
func (s Selection) Range() (daterange.DateRange, bool) {
	if s.Phase() != PhaseComplete {
		return daterange.DateRange{}, false
	}
	return daterange.DateRange{CheckIn: s.CheckIn, CheckOut: s.CheckOut}, true
}

// SelectDate applies a click. Past and sold-out days are ignored; changed reports whether state moved.
func (s *Selection) SelectDate(day, today time.Time, status StatusFunc) (changed bool) {
	day = daterange.Day(day)
	if IsPast(day, today) {
		return false
	}
	if status != nil && status(day) == pricing.StatusSoldOut {
		return false
	}

	switch s.Phase() {
	case PhaseHasCheckIn:
		if day.After(s.CheckIn) {
			s.CheckOut = day
			if s.onComplete != nil {
				s.onComplete(daterange.DateRange{CheckIn: s.CheckIn, CheckOut: s.CheckOut})
			}
			return true
		}
		changed = !day.Equal(s.CheckIn)
		s.CheckIn = day
		return changed
	default:
		s.CheckIn = day
		s.CheckOut = time.Time{}
		return true
	}
}

func (s *Selection) Clear() {
	s.CheckIn = time.Time{}
	s.CheckOut = time.Time{}
}

func (s Selection) IsSelected(day time.Time) bool {
	day = daterange.Day(day)
	return (!s.CheckIn.IsZero() && day.Equal(s.CheckIn)) || (!s.CheckOut.IsZero() && day.Equal(s.CheckOut))
}

// InRange reports days strictly between check-in and check-out.
func (s Selection) InRange(day time.Time) bool {
	if s.Phase() != PhaseComplete {
		return false
	}
	day = daterange.Day(day)
	return day.After(s.CheckIn) && day.Before(s.CheckOut)
}
