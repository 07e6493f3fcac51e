package calendar

import (
	"context"
	"strings"
	"time"

	"staysia/internal/app/dto"
	"staysia/internal/app/queries"
	domaincalendar "staysia/internal/domain/calendar"
)

const getMonthKey = "calendar.sessions.month"

// GetMonthQuery renders one month of a session. An empty Month shows the check-in month, else the current one.
type GetMonthQuery struct {
	SessionID string
	Month     string
}

func (q GetMonthQuery) Key() string { return getMonthKey }

type GetMonthHandler struct {
	Sessions domaincalendar.SessionStore
	Now      func() time.Time
}

func (h *GetMonthHandler) Handle(ctx context.Context, q GetMonthQuery) (dto.CalendarMonth, error) {
	session, err := h.Sessions.Get(ctx, q.SessionID)
	if err != nil {
		return dto.CalendarMonth{}, err
	}
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	month := domaincalendar.MonthOf(now.UTC())
	switch {
	case strings.TrimSpace(q.Month) != "":
		month, err = domaincalendar.ParseMonth(strings.TrimSpace(q.Month))
		if err != nil {
			return dto.CalendarMonth{}, err
		}
	case !session.Selection.CheckIn.IsZero():
		month = domaincalendar.MonthOf(session.Selection.CheckIn)
	}

	return dto.CalendarMonth{
		Session: dto.MapCalendarSession(session),
		Month:   session.MonthView(month, now),
	}, nil
}

var _ queries.Handler[GetMonthQuery, dto.CalendarMonth] = (*GetMonthHandler)(nil)
