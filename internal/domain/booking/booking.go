package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/events"
)

var (
	ErrInvalidGuests    = errors.New("booking: guests count must be positive")
	ErrGuestRequired    = errors.New("booking: guest id required")
	ErrTotalNotPositive = errors.New("booking: total must be positive")
	ErrBookingNotFound  = errors.New("booking: not found")
)

type BookingID string

type BookingState string

const (
	StatePending BookingState = "PENDING"
)

type Booking struct {
	ID           BookingID
	PropertyID   properties.PropertyID
	PropertyName string
	GuestID      string
	Range        daterange.DateRange
	Guests       int
	Price        pricing.PriceBreakdown
	State        BookingState
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// Version is bumped by the repository on every save.
	Version int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	// ListByGuest returns the guest's bookings, most recent check-in first.
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}

type CreateParams struct {
	ID           BookingID
	PropertyID   properties.PropertyID
	PropertyName string
	GuestID      string
	Range        daterange.DateRange
	Guests       int
	Price        pricing.PriceBreakdown
	CreatedAt    time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if strings.TrimSpace(params.GuestID) == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if err := params.Price.RecalculateTotal(); err != nil {
		return nil, err
	}
	if params.Price.Total.Amount <= 0 {
		return nil, ErrTotalNotPositive
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:           params.ID,
		PropertyID:   params.PropertyID,
		PropertyName: params.PropertyName,
		GuestID:      params.GuestID,
		Range:        params.Range,
		Guests:       params.Guests,
		Price:        params.Price.Copy(),
		State:        StatePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	b.Record(BookingRequested{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		GuestID:    b.GuestID,
		Range:      b.Range,
		Guests:     b.Guests,
		Total:      b.Price.Total.Amount,
		At:         now,
	})
	return b, nil
}
