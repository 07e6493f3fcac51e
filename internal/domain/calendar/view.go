package calendar

import (
	"time"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/daterange"
	"staysia/internal/domain/shared/money"
)

// UnavailableMark replaces the price on sold-out and past cells.
const UnavailableMark = "✕"

type Cell struct {
	Day          int            `json:"day"`
	Date         string         `json:"date"`
	Price        int64          `json:"price"`
	DisplayPrice string         `json:"display_price"`
	Status       pricing.Status `json:"status"`
	Disabled     bool           `json:"disabled"`
	Selected     bool           `json:"selected"`
	InRange      bool           `json:"in_range"`
	Weekend      bool           `json:"weekend"`
	Today        bool           `json:"today"`
}

type MonthView struct {
	Month        string `json:"month"`
	Label        string `json:"label"`
	FirstWeekday int    `json:"first_weekday"`
	DaysInMonth  int    `json:"days_in_month"`
	Prev         string `json:"prev"`
	Next         string `json:"next"`
	CheckIn      string `json:"check_in,omitempty"`
	CheckOut     string `json:"check_out,omitempty"`
	Cells        []Cell `json:"cells"`
}

// CellViewModel renders one day for the given viewer.
func CellViewModel(day, today time.Time, idx pricing.Index, sel Selection, f money.Formatter) Cell {
	q := idx.Lookup(day)
	past := IsPast(day, today)
	cell := Cell{
		Day:      day.Day(),
		Date:     daterange.FormatDay(day),
		Price:    q.Price,
		Status:   q.Status,
		Disabled: past || q.Status == pricing.StatusSoldOut,
		Selected: sel.IsSelected(day),
		InRange:  sel.InRange(day),
		Weekend:  IsWeekend(day),
		Today:    daterange.Day(day).Equal(daterange.Day(today)),
	}
	if cell.Disabled {
		cell.DisplayPrice = UnavailableMark
	} else {
		cell.DisplayPrice = f.FormatShort(q.Price)
	}
	return cell
}

func BuildMonthView(m Month, today time.Time, idx pricing.Index, sel Selection, f money.Formatter) MonthView {
	info := m.Info()
	view := MonthView{
		Month:        m.String(),
		Label:        m.Label(),
		FirstWeekday: info.FirstWeekday,
		DaysInMonth:  info.Count,
		Prev:         m.Prev().String(),
		Next:         m.Next().String(),
		CheckIn:      daterange.FormatDay(sel.CheckIn),
		CheckOut:     daterange.FormatDay(sel.CheckOut),
		Cells:        make([]Cell, 0, info.Count),
	}
	for d := 1; d <= info.Count; d++ {
		view.Cells = append(view.Cells, CellViewModel(m.Day(d), today, idx, sel, f))
	}
	return view
}

// MonthView renders the session for the given month using its stored preferences.
func (s *Session) MonthView(m Month, now time.Time) MonthView {
	return BuildMonthView(m, daterange.Today(now), s.Index(), s.Selection, money.NewFormatter(s.Preferences()))
}
