package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staysia/internal/domain/pricing"
	"staysia/internal/domain/shared/daterange"
)

var today = time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)

func oct(day int) time.Time {
	return time.Date(2025, 10, day, 0, 0, 0, 0, time.UTC)
}

func allAvailable(time.Time) pricing.Status { return pricing.StatusAvailable }

func TestSelectionClickSequence(t *testing.T) {
	today := oct(1)
	var sel Selection
	var completed []daterange.DateRange
	sel.OnRangeComplete(func(r daterange.DateRange) { completed = append(completed, r) })

	require.True(t, sel.SelectDate(oct(15), today, allAvailable))
	assert.Equal(t, PhaseHasCheckIn, sel.Phase())
	assert.Equal(t, oct(15), sel.CheckIn)

	require.True(t, sel.SelectDate(oct(18), today, allAvailable))
	assert.Equal(t, PhaseComplete, sel.Phase())
	assert.Equal(t, oct(18), sel.CheckOut)
	require.Len(t, completed, 1)
	assert.Equal(t, 3, completed[0].Nights())

	require.True(t, sel.SelectDate(oct(10), today, allAvailable))
	assert.Equal(t, PhaseHasCheckIn, sel.Phase())
	assert.Equal(t, oct(10), sel.CheckIn)
	assert.True(t, sel.CheckOut.IsZero())
	assert.Len(t, completed, 1)
}

func TestSelectionIgnoresPastDays(t *testing.T) {
	var sel Selection
	require.True(t, sel.SelectDate(oct(15), today, allAvailable))
	require.True(t, sel.SelectDate(oct(18), today, allAvailable))

	// 2025-10-10 is before today: the complete pair stays as it is.
	assert.False(t, sel.SelectDate(oct(10), today, allAvailable))
	assert.Equal(t, oct(15), sel.CheckIn)
	assert.Equal(t, oct(18), sel.CheckOut)
}

func TestSelectionRestartsOnEarlierCheckout(t *testing.T) {
	var sel Selection
	fired := 0
	sel.OnRangeComplete(func(daterange.DateRange) { fired++ })

	sel.SelectDate(oct(20), today, allAvailable)
	assert.True(t, sel.SelectDate(oct(16), today, allAvailable))
	assert.Equal(t, PhaseHasCheckIn, sel.Phase())
	assert.Equal(t, oct(16), sel.CheckIn)

	assert.False(t, sel.SelectDate(oct(16), today, allAvailable))
	assert.Equal(t, PhaseHasCheckIn, sel.Phase())
	assert.Zero(t, fired)
}

func TestSelectionSoldOutClickIsNoop(t *testing.T) {
	status := func(d time.Time) pricing.Status {
		if d.Equal(oct(17)) {
			return pricing.StatusSoldOut
		}
		return pricing.StatusAvailable
	}
	var sel Selection
	sel.SelectDate(oct(15), today, status)

	before := sel
	assert.False(t, sel.SelectDate(oct(17), today, status))
	assert.Equal(t, before.CheckIn, sel.CheckIn)
	assert.Equal(t, before.CheckOut, sel.CheckOut)
	assert.Equal(t, PhaseHasCheckIn, sel.Phase())
}

func TestSelectionAllowsSoldOutNightsInside(t *testing.T) {
	status := func(d time.Time) pricing.Status {
		if d.Equal(oct(17)) {
			return pricing.StatusSoldOut
		}
		return pricing.StatusAvailable
	}
	var sel Selection
	sel.SelectDate(oct(15), today, status)
	assert.True(t, sel.SelectDate(oct(19), today, status))
	assert.Equal(t, PhaseComplete, sel.Phase())
	assert.True(t, sel.InRange(oct(17)))
}

func TestSelectionInRangeExcludesEndpoints(t *testing.T) {
	var sel Selection
	sel.SelectDate(oct(15), today, allAvailable)
	sel.SelectDate(oct(18), today, allAvailable)

	assert.False(t, sel.InRange(oct(15)))
	assert.True(t, sel.InRange(oct(16)))
	assert.True(t, sel.InRange(oct(17)))
	assert.False(t, sel.InRange(oct(18)))
	assert.True(t, sel.IsSelected(oct(15)))
	assert.True(t, sel.IsSelected(oct(18)))
}

func TestSelectionClear(t *testing.T) {
	var sel Selection
	sel.SelectDate(oct(15), today, allAvailable)
	sel.SelectDate(oct(18), today, allAvailable)

	sel.Clear()
	assert.Equal(t, PhaseEmpty, sel.Phase())
	_, ok := sel.Range()
	assert.False(t, ok)
}

func TestSelectionCheckOutNeverWithoutCheckIn(t *testing.T) {
	var sel Selection
	days := []int{20, 18, 25, 14, 14, 30, 15, 16}
	for _, d := range days {
		sel.SelectDate(oct(d), today, allAvailable)
		if !sel.CheckOut.IsZero() {
			require.False(t, sel.CheckIn.IsZero())
			require.True(t, sel.CheckOut.After(sel.CheckIn))
		}
	}
}
