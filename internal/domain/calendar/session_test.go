package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/money"
)

func newTestSession(entries []pricing.Entry) *Session {
	return NewSession("sess-1", 83, "Villa Ubud", 800_000, entries, money.DefaultPreferences(), today)
}

func TestSessionRecordsRangeSelectedOnce(t *testing.T) {
	s := newTestSession([]pricing.Entry{{Date: oct(16), Price: 1_000_000, Status: pricing.StatusPeakSeason}})

	s.SelectDate(oct(15), today)
	assert.Empty(t, s.PendingEvents())

	s.SelectDate(oct(18), today)
	events := s.PendingEvents()
	require.Len(t, events, 1)

	evt, ok := events[0].(RangeSelected)
	require.True(t, ok)
	assert.Equal(t, "calendar.range_selected", evt.EventName())
	assert.Equal(t, "sess-1", evt.AggregateID())
	assert.Equal(t, 3, evt.Nights)
	assert.Equal(t, int64(800_000+1_000_000+800_000), evt.Total)

	s.SelectDate(oct(25), today)
	assert.Len(t, s.PendingEvents(), 1)
}

func TestSessionStayRejectsSoldOutNights(t *testing.T) {
	s := newTestSession([]pricing.Entry{{Date: oct(16), Price: 800_000, Status: pricing.StatusSoldOut}})

	_, _, err := s.Stay()
	assert.ErrorIs(t, err, ErrSelectionIncomplete)

	s.SelectDate(oct(15), today)
	s.SelectDate(oct(18), today)
	_, _, err = s.Stay()
	assert.ErrorIs(t, err, ErrSoldOutInRange)

	s.ClearSelection(today)
	s.SelectDate(oct(17), today)
	s.SelectDate(oct(19), today)
	r, quote, err := s.Stay()
	require.NoError(t, err)
	assert.Equal(t, 2, r.Nights())
	assert.Equal(t, int64(1_600_000), quote.Total.Amount)
}

func TestMonthViewCells(t *testing.T) {
	s := newTestSession([]pricing.Entry{
		{Date: oct(20), Price: 1_000_000, Status: pricing.StatusPeakSeason},
		{Date: oct(22), Price: 800_000, Status: pricing.StatusSoldOut},
	})
	s.SelectDate(oct(15), today)
	s.SelectDate(oct(18), today)

	view := s.MonthView(MonthOf(today), today)
	assert.Equal(t, "2025-10", view.Month)
	assert.Equal(t, "October 2025", view.Label)
	assert.Equal(t, 3, view.FirstWeekday)
	assert.Equal(t, "2025-09", view.Prev)
	assert.Equal(t, "2025-11", view.Next)
	assert.Equal(t, "2025-10-15", view.CheckIn)
	assert.Equal(t, "2025-10-18", view.CheckOut)
	require.Len(t, view.Cells, 31)

	past := view.Cells[9]
	assert.Equal(t, "2025-10-10", past.Date)
	assert.True(t, past.Disabled)
	assert.Equal(t, UnavailableMark, past.DisplayPrice)

	assert.True(t, view.Cells[13].Today)
	assert.False(t, view.Cells[13].Disabled)

	assert.True(t, view.Cells[14].Selected)
	assert.True(t, view.Cells[15].InRange)
	assert.False(t, view.Cells[17].InRange)
	assert.True(t, view.Cells[17].Selected)

	peak := view.Cells[19]
	assert.Equal(t, pricing.StatusPeakSeason, peak.Status)
	assert.Equal(t, "1M", peak.DisplayPrice)

	soldOut := view.Cells[21]
	assert.True(t, soldOut.Disabled)
	assert.Equal(t, UnavailableMark, soldOut.DisplayPrice)

	assert.Equal(t, "800k", view.Cells[20].DisplayPrice)
}
