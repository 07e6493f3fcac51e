package booking

import (
	"time"

	"staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
)

type BookingRequested struct {
	BookingID  BookingID
	PropertyID properties.PropertyID
	GuestID    string
	Range      daterange.DateRange
	Guests     int
	Total      int64
	At         time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }
