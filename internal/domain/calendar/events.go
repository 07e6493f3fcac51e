package calendar

import (
	"time"

	"staysia/internal/domain/shared/daterange"
)

type RangeSelected struct {
	SessionID  string
	PropertyID int64
	Range      daterange.DateRange
	Nights     int
	Total      int64
	At         time.Time
}

func (e RangeSelected) EventName() string     { return "calendar.range_selected" }
func (e RangeSelected) AggregateID() string   { return e.SessionID }
func (e RangeSelected) OccurredAt() time.Time { return e.At }
