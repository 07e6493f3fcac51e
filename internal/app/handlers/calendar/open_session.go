package calendar

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	"staysia/internal/app/handlers/support"
	"staysia/internal/app/policies"
	"staysia/internal/app/uow"
	domaincalendar "staysia/internal/domain/calendar"
	domainpricing "staysia/internal/domain/pricing"
	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/money"
)

const openSessionKey = "calendar.sessions.open"

type OpenSessionCommand struct {
	PropertyID int64  `json:"property_id" validate:"gt=0"`
	Currency   string `json:"currency" validate:"omitempty,len=3"`
	Locale     string `json:"locale" validate:"omitempty,max=35"`
}

func (c OpenSessionCommand) Key() string { return openSessionKey }

type OpenSessionHandler struct {
	UoWFactory uow.UoWFactory
	Sessions   domaincalendar.SessionStore
	Pricing    policies.PricingSource
	Logger     *slog.Logger
	Now        func() time.Time
	NewID      func() string
}

func (h *OpenSessionHandler) Handle(ctx context.Context, cmd OpenSessionCommand) (dto.CalendarSession, error) {
	prefs, err := money.NewPreferences(cmd.Locale, cmd.Currency)
	if err != nil {
		return dto.CalendarSession{}, err
	}

	property, err := h.loadProperty(ctx, domainproperties.PropertyID(cmd.PropertyID))
	if err != nil {
		return dto.CalendarSession{}, err
	}

	now := h.now()
	today := daterange.Today(now)
	entries := h.fetchPricing(ctx, cmd.PropertyID, today, today.AddDate(0, 0, domaincalendar.HorizonDays))

	session := domaincalendar.NewSession(h.newID(), cmd.PropertyID, property.Name, property.Price, entries, prefs, now)
	if err := h.Sessions.Create(ctx, session); err != nil {
		return dto.CalendarSession{}, err
	}
	h.logger().Info("calendar session opened",
		"session_id", session.ID,
		"property_id", session.PropertyID,
		"priced_days", len(entries),
		"currency", session.Currency,
	)
	return dto.MapCalendarSession(session), nil
}

func (h *OpenSessionHandler) loadProperty(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	if id <= 0 {
		return nil, domainproperties.ErrInvalidID
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	return unit.Properties().ByID(execCtx, id)
}

// fetchPricing degrades to an empty list on failure so the calendar falls back to the base price.
func (h *OpenSessionHandler) fetchPricing(ctx context.Context, propertyID int64, from, to time.Time) []domainpricing.Entry {
	if h.Pricing == nil {
		return nil
	}
	entries, err := h.Pricing.FetchPricing(ctx, propertyID, from, to)
	if err != nil {
		h.logger().Warn("pricing fetch failed, using base price", "property_id", propertyID, "error", err)
		return nil
	}
	return entries
}

func (h *OpenSessionHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *OpenSessionHandler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}

func (h *OpenSessionHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ commands.Handler[OpenSessionCommand, dto.CalendarSession] = (*OpenSessionHandler)(nil)
