package pricing

import (
	"math"
	"math/rand"
	"time"

	"staysia/internal/domain/shared/daterange"
)

// SeedHorizonDays is the length of a generated pricing calendar.
const SeedHorizonDays = 90

// Generator produces demo pricing calendars: 60% available, 20% best deal, 15% peak and 5% sold out,
// shuffled and then biased towards peak/sold out on Fri-Sun and towards available on weekdays.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *Generator) Generate(basePrice int64, start time.Time, days int) []Entry {
	if days <= 0 {
		days = SeedHorizonDays
	}
	statuses := g.distribution(days)
	start = daterange.Day(start)

	out := make([]Entry, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		status := g.bias(statuses[i], daterange.IsWeekend(day))
		out = append(out, Entry{Date: day, Price: g.price(basePrice, status), Status: status})
	}
	return out
}

func (g *Generator) distribution(days int) []Status {
	counts := []struct {
		status Status
		n      int
	}{
		{StatusBestDeal, days * 20 / 100},
		{StatusPeakSeason, days * 15 / 100},
		{StatusSoldOut, days * 5 / 100},
	}
	out := make([]Status, 0, days)
	for _, c := range counts {
		for i := 0; i < c.n; i++ {
			out = append(out, c.status)
		}
	}
	for len(out) < days {
		out = append(out, StatusAvailable)
	}
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (g *Generator) bias(status Status, weekend bool) Status {
	r := g.rng.Float64()
	if weekend {
		switch {
		case r < 0.4 && status == StatusAvailable:
			return StatusPeakSeason
		case r < 0.5 && status == StatusAvailable:
			return StatusSoldOut
		}
		return status
	}
	switch {
	case r < 0.3 && (status == StatusPeakSeason || status == StatusSoldOut):
		return StatusAvailable
	case r >= 0.3 && r < 0.5 && status == StatusPeakSeason:
		return StatusBestDeal
	}
	return status
}

func (g *Generator) price(base int64, status Status) int64 {
	switch status {
	case StatusBestDeal:
		return int64(math.Round(float64(base) * (0.65 + g.rng.Float64()*0.15)))
	case StatusPeakSeason:
		return int64(math.Round(float64(base) * (1.25 + g.rng.Float64()*0.25)))
	default:
		return base
	}
}
