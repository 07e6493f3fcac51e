package calendar

import (
	"context"
	"log/slog"
	"time"

	"staysia/internal/app/commands"
	"staysia/internal/app/dto"
	"staysia/internal/app/outbox"
	domaincalendar "staysia/internal/domain/calendar"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/events"
)

const (
	selectDateKey     = "calendar.sessions.select"
	clearSelectionKey = "calendar.sessions.clear"
)

type SelectDateCommand struct {
	SessionID string    `json:"session_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
}

func (c SelectDateCommand) Key() string { return selectDateKey }

type SelectDateHandler struct {
	Sessions domaincalendar.SessionStore
	Outbox   outbox.Outbox
	Encoder  outbox.EventEncoder
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *SelectDateHandler) Handle(ctx context.Context, cmd SelectDateCommand) (dto.SelectDateResult, error) {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	var changed bool
	session, err := h.Sessions.Update(ctx, cmd.SessionID, func(s *domaincalendar.Session) error {
		s.ClearEvents()
		changed = s.SelectDate(cmd.Date, now)
		return nil
	})
	if err != nil {
		return dto.SelectDateResult{}, err
	}

	pending := session.PendingEvents()
	session.ClearEvents()
	h.logCompleted(pending)
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return dto.SelectDateResult{}, err
	}
	return dto.SelectDateResult{Changed: changed, Session: dto.MapCalendarSession(session)}, nil
}

func (h *SelectDateHandler) logCompleted(evs []events.DomainEvent) {
	if h.Logger == nil {
		return
	}
	for _, ev := range evs {
		selected, ok := ev.(domaincalendar.RangeSelected)
		if !ok {
			continue
		}
		h.Logger.Info("calendar range selected",
			"session_id", selected.SessionID,
			"property_id", selected.PropertyID,
			"check_in", daterange.FormatDay(selected.Range.CheckIn),
			"check_out", daterange.FormatDay(selected.Range.CheckOut),
			"nights", selected.Nights,
			"total", selected.Total,
		)
	}
}

type ClearSelectionCommand struct {
	SessionID string `json:"session_id" validate:"required"`
}

func (c ClearSelectionCommand) Key() string { return clearSelectionKey }

type ClearSelectionHandler struct {
	Sessions domaincalendar.SessionStore
	Now      func() time.Time
}

func (h *ClearSelectionHandler) Handle(ctx context.Context, cmd ClearSelectionCommand) (dto.CalendarSession, error) {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	session, err := h.Sessions.Update(ctx, cmd.SessionID, func(s *domaincalendar.Session) error {
		s.ClearSelection(now)
		return nil
	})
	if err != nil {
		return dto.CalendarSession{}, err
	}
	return dto.MapCalendarSession(session), nil
}

var (
	_ commands.Handler[SelectDateCommand, dto.SelectDateResult]    = (*SelectDateHandler)(nil)
	_ commands.Handler[ClearSelectionCommand, dto.CalendarSession] = (*ClearSelectionHandler)(nil)
)
