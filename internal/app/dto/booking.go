package dto

import (
	"time"

	domainbooking "staysia/internal/domain/booking"
	"staysia/internal/domain/shared/daterange"
)

type Booking struct {
	ID           string    `json:"id"`
	PropertyID   int64     `json:"property_id"`
	PropertyName string    `json:"property_name,omitempty"`
	CheckIn      string    `json:"check_in"`
	CheckOut     string    `json:"check_out"`
	Nights       int       `json:"nights"`
	Guests       int       `json:"guests"`
	Total        int64     `json:"total"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	if b == nil {
		return Booking{}
	}
	return Booking{
		ID:           string(b.ID),
		PropertyID:   int64(b.PropertyID),
		PropertyName: b.PropertyName,
		CheckIn:      daterange.FormatDay(b.Range.CheckIn),
		CheckOut:     daterange.FormatDay(b.Range.CheckOut),
		Nights:       b.Range.Nights(),
		Guests:       b.Guests,
		Total:        b.Price.Total.Amount,
		Currency:     b.Price.Total.Currency,
		Status:       string(b.State),
		CreatedAt:    b.CreatedAt,
	}
}

func MapBookings(items []*domainbooking.Booking) []Booking {
	out := make([]Booking, 0, len(items))
	for _, b := range items {
		out = append(out, MapBooking(b))
	}
	return out
}
