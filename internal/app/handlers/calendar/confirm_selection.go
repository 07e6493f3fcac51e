package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	"staysia/internal/app/middleware"
	"staysia/internal/app/outbox"
	"staysia/internal/app/uow"
	domainbooking "staysia/internal/domain/booking"
	domaincalendar "staysia/internal/domain/calendar"
	domainproperties "staysia/internal/domain/properties"
)

const confirmSelectionKey = "calendar.sessions.confirm"

var ErrSelectionExpired = errors.New("calendar: selected check-in is in the past")

// ConfirmSelectionCommand turns a complete selection into a pending booking for the signed-in guest.
type ConfirmSelectionCommand struct {
	SessionID       string `json:"session_id" validate:"required"`
	GuestID         string `json:"guest_id"`
	Guests          int    `json:"guests" validate:"gte=0,lte=32"`
	IdempotencyKeyV string `json:"-"`
}

func (c ConfirmSelectionCommand) Key() string { return confirmSelectionKey }

func (c ConfirmSelectionCommand) Guest() string { return c.GuestID }

func (c ConfirmSelectionCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ConfirmSelectionCommand) ResultPrototype() any { return &dto.Booking{} }

type ConfirmSelectionHandler struct {
	Sessions domaincalendar.SessionStore
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Now      func() time.Time
	NewID    func() string
}

func (h *ConfirmSelectionHandler) Handle(ctx context.Context, cmd ConfirmSelectionCommand) (dto.Booking, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.Booking{}, uow.ErrUnitOfWorkMissing
	}
	session, err := h.Sessions.Get(ctx, cmd.SessionID)
	if err != nil {
		return dto.Booking{}, err
	}
	stay, quote, err := session.Stay()
	if err != nil {
		return dto.Booking{}, err
	}
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	if domaincalendar.IsPast(stay.CheckIn, now.UTC()) {
		return dto.Booking{}, ErrSelectionExpired
	}

	guests := cmd.Guests
	if guests <= 0 {
		guests = 1
	}
	id := uuid.NewString()
	if h.NewID != nil {
		id = h.NewID()
	}
	booking, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:           domainbooking.BookingID(id),
		PropertyID:   domainproperties.PropertyID(session.PropertyID),
		PropertyName: session.PropertyName,
		GuestID:      cmd.GuestID,
		Range:        stay,
		Guests:       guests,
		Price:        quote,
		CreatedAt:    now,
	})
	if err != nil {
		return dto.Booking{}, err
	}
	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return dto.Booking{}, err
	}

	evs := booking.PendingEvents()
	booking.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return dto.Booking{}, err
	}
	return dto.MapBooking(booking), nil
}

var (
	_ commands.Handler[ConfirmSelectionCommand, dto.Booking] = (*ConfirmSelectionHandler)(nil)
	_ middleware.IdempotentCommand                           = ConfirmSelectionCommand{}
	_ middleware.GuestScoped                                 = ConfirmSelectionCommand{}
)
