package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/daterange"
)

func stay(t *testing.T) (daterange.DateRange, pricing.PriceBreakdown) {
	t.Helper()
	in := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	r, err := daterange.New(in, in.AddDate(0, 0, 2))
	require.NoError(t, err)
	idx := pricing.BuildIndex(nil, 500_000)
	return r, pricing.PriceBreakdown{Nights: idx.Nights(r)}
}

func TestNewBookingIsPendingWithTotal(t *testing.T) {
	r, price := stay(t)
	b, err := NewBooking(CreateParams{ID: "b-1", PropertyID: 83, GuestID: "u-1", Range: r, Guests: 1, Price: price, CreatedAt: r.CheckIn})
	require.NoError(t, err)

	assert.Equal(t, StatePending, b.State)
	assert.Equal(t, int64(1_000_000), b.Price.Total.Amount)
	events := b.PendingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "booking.requested", events[0].EventName())
}

func TestNewBookingValidates(t *testing.T) {
	r, price := stay(t)

	_, err := NewBooking(CreateParams{GuestID: "u-1", Range: r, Guests: 0, Price: price})
	assert.ErrorIs(t, err, ErrInvalidGuests)

	_, err = NewBooking(CreateParams{Range: r, Guests: 1, Price: price})
	assert.ErrorIs(t, err, ErrGuestRequired)

	_, err = NewBooking(CreateParams{GuestID: "u-1", Range: r, Guests: 1})
	assert.ErrorIs(t, err, pricing.ErrNoNights)
}
