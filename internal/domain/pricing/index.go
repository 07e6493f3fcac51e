package pricing

import (
	"sort"
	"time"

	"staysia/internal/domain/shared/daterange"
)

// Quote is the effective price and status of a single day.
type Quote struct {
	Price  int64
	Status Status
}

// Index answers per-day lookups for one property. It is immutable once built.
type Index struct {
	basePrice int64
	byDay     map[string]Entry
}

// BuildIndex keys entries by calendar day. When a day appears more than once the last entry wins.
func BuildIndex(entries []Entry, basePrice int64) Index {
	byDay := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byDay[entry.Day()] = entry
	}
	return Index{basePrice: basePrice, byDay: byDay}
}

func (idx Index) BasePrice() int64 { return idx.basePrice }

func (idx Index) Len() int { return len(idx.byDay) }

// Lookup falls back to the base price and available status for unknown days.
func (idx Index) Lookup(day time.Time) Quote {
	if entry, ok := idx.byDay[daterange.FormatDay(day)]; ok {
		return Quote{Price: entry.Price, Status: entry.Status}
	}
	return Quote{Price: idx.basePrice, Status: StatusAvailable}
}

// Entries returns the indexed entries ordered by date.
func (idx Index) Entries() []Entry {
	out := make([]Entry, 0, len(idx.byDay))
	for _, entry := range idx.byDay {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Nights prices every night of the stay, check-out day excluded.
func (idx Index) Nights(r daterange.DateRange) []Night {
	var nights []Night
	r.EachNight(func(day time.Time) {
		q := idx.Lookup(day)
		nights = append(nights, Night{Date: day, Price: q.Price, Status: q.Status})
	})
	return nights
}

// Quote builds a breakdown for the stay.
func (idx Index) Quote(r daterange.DateRange) (PriceBreakdown, error) {
	if err := r.Validate(); err != nil {
		return PriceBreakdown{}, err
	}
	b := PriceBreakdown{Nights: idx.Nights(r)}
	if err := b.RecalculateTotal(); err != nil {
		return PriceBreakdown{}, err
	}
	return b, nil
}

// SoldOutWithin lists sold-out nights of the stay.
func (idx Index) SoldOutWithin(r daterange.DateRange) []time.Time {
	var out []time.Time
	for _, night := range idx.Nights(r) {
		if night.Status == StatusSoldOut {
			out = append(out, night.Date)
		}
	}
	return out
}
