package dto

import (
	"staysia/internal/domain/calendar"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/money"
)

type CalendarSession struct {
	ID           string `json:"id"`
	PropertyID   int64  `json:"property_id"`
	PropertyName string `json:"property_name"`
	BasePrice    int64  `json:"base_price"`
	Currency     string `json:"currency"`
	Locale       string `json:"locale"`
	Phase        string `json:"phase"`
	CheckIn      string `json:"check_in,omitempty"`
	CheckOut     string `json:"check_out,omitempty"`
	Nights       int    `json:"nights,omitempty"`
	Total        int64  `json:"total,omitempty"`
	DisplayTotal string `json:"display_total,omitempty"`
	PricedDays   int    `json:"priced_days"`
}

type SelectDateResult struct {
	Changed bool            `json:"changed"`
	Session CalendarSession `json:"session"`
}

func MapCalendarSession(s *calendar.Session) CalendarSession {
	if s == nil {
		return CalendarSession{}
	}
	out := CalendarSession{
		ID:           s.ID,
		PropertyID:   s.PropertyID,
		PropertyName: s.PropertyName,
		BasePrice:    s.BasePrice,
		Currency:     s.Currency,
		Locale:       s.Locale,
		Phase:        string(s.Selection.Phase()),
		CheckIn:      daterange.FormatDay(s.Selection.CheckIn),
		CheckOut:     daterange.FormatDay(s.Selection.CheckOut),
		PricedDays:   len(s.Entries),
	}
	if r, ok := s.Selection.Range(); ok {
		out.Nights = r.Nights()
		if quote, err := s.Index().Quote(r); err == nil {
			out.Total = quote.Total.Amount
			out.DisplayTotal = money.NewFormatter(s.Preferences()).Format(quote.Total.Amount)
		}
	}
	return out
}

type CalendarMonth struct {
	Session CalendarSession    `json:"session"`
	Month   calendar.MonthView `json:"month"`
}
