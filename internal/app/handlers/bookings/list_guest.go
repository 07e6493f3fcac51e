package bookings

import (
	"context"

	"staysia/internal/app/dto"
	"staysia/internal/app/handlers/support"
	"staysia/internal/app/middleware"
	"staysia/internal/app/queries"
	"staysia/internal/app/uow"
)

const listGuestBookingsKey = "bookings.list_guest"

type ListGuestBookingsQuery struct {
	GuestID string
}

func (q ListGuestBookingsQuery) Key() string { return listGuestBookingsKey }

func (q ListGuestBookingsQuery) Guest() string { return q.GuestID }

type ListGuestBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListGuestBookingsHandler) Handle(ctx context.Context, q ListGuestBookingsQuery) ([]dto.Booking, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Bookings().ListByGuest(execCtx, q.GuestID)
	if err != nil {
		return nil, err
	}
	return dto.MapBookings(items), nil
}

var (
	_ queries.Handler[ListGuestBookingsQuery, []dto.Booking] = (*ListGuestBookingsHandler)(nil)
	_ middleware.GuestScoped                                 = ListGuestBookingsQuery{}
)
