package pricing

import (
	"errors"
	"time"

	"staysia/internal/domain/shared/money"
)

var ErrNoNights = errors.New("pricing: breakdown has no nights")

type Night struct {
	Date   time.Time
	Price  int64
	Status Status
}

type PriceBreakdown struct {
	Nights []Night
	Total  money.Money
}

func (p *PriceBreakdown) Validate() error {
	if len(p.Nights) == 0 {
		return ErrNoNights
	}
	for _, n := range p.Nights {
		if n.Price < 0 {
			return ErrInvalidPrice
		}
	}
	return nil
}

func (p *PriceBreakdown) RecalculateTotal() error {
	if err := p.Validate(); err != nil {
		return err
	}
	total := money.IDR(0)
	for _, n := range p.Nights {
		total, _ = total.Add(money.IDR(n.Price))
	}
	p.Total = total
	return nil
}

// Average is the mean nightly price, rounded down.
func (p PriceBreakdown) Average() int64 {
	if len(p.Nights) == 0 {
		return 0
	}
	return p.Total.Amount / int64(len(p.Nights))
}

func (p PriceBreakdown) Copy() PriceBreakdown {
	clone := p
	clone.Nights = append([]Night(nil), p.Nights...)
	return clone
}
