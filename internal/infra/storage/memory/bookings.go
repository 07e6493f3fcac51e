package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	domainbooking "staysia/internal/domain/booking"
	domainpricing "staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/events"
)

var ErrConcurrentUpdate = errors.New("memory: concurrent update detected")

type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(_ context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

// Save rejects writes whose Version does not match the stored one.
func (r *BookingRepository) Save(_ context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[b.ID]
	if ok && current.Version != b.Version {
		return ErrConcurrentUpdate
	}
	if !ok && b.Version != 0 {
		return ErrConcurrentUpdate
	}
	b.Version++
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) ListByGuest(_ context.Context, guestID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	out := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.GuestID == guestID {
			out = append(out, cloneBooking(b))
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Range.CheckIn.Equal(out[j].Range.CheckIn) {
			return out[i].Range.CheckIn.After(out[j].Range.CheckIn)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	cp := *b
	cp.Price.Nights = append([]domainpricing.Night(nil), b.Price.Nights...)
	cp.EventRecorder = events.EventRecorder{}
	return &cp
}

var _ domainbooking.Repository = (*BookingRepository)(nil)
