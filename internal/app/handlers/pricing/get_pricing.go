package pricing

import (
	"context"
	"errors"
	"time"

	"staysia/internal/app/dto"
	"staysia/internal/app/handlers/support"
	"staysia/internal/app/queries"
	"staysia/internal/app/uow"
	domainproperties "staysia/internal/domain/properties"
	"staysia/internal/domain/shared/daterange"
)

const getPricingKey = "pricing.range"

// MaxWindowDays bounds a single pricing request.
const MaxWindowDays = 90

var ErrInvalidWindow = errors.New("pricing: to must not be before from")

// GetPricingQuery returns daily pricing rows for [From, To], ascending by date.
type GetPricingQuery struct {
	PropertyID domainproperties.PropertyID
	From       time.Time
	To         time.Time
}

func (q GetPricingQuery) Key() string { return getPricingKey }

type GetPricingHandler struct {
	UoWFactory uow.UoWFactory
	Now        func() time.Time
}

func (h *GetPricingHandler) Handle(ctx context.Context, q GetPricingQuery) ([]dto.PricingEntry, error) {
	if q.PropertyID <= 0 {
		return nil, domainproperties.ErrInvalidID
	}
	from, to, err := h.window(q.From, q.To)
	if err != nil {
		return nil, err
	}

	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	if _, err := unit.Properties().ByID(execCtx, q.PropertyID); err != nil {
		return nil, err
	}
	entries, err := unit.Pricing().Range(execCtx, int64(q.PropertyID), from, to)
	if err != nil {
		return nil, err
	}
	return dto.MapPricing(entries), nil
}

func (h *GetPricingHandler) window(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() {
		now := time.Now()
		if h.Now != nil {
			now = h.Now()
		}
		from = daterange.Today(now)
	}
	from = daterange.Day(from)
	if to.IsZero() {
		to = from.AddDate(0, 0, MaxWindowDays)
	}
	to = daterange.Day(to)
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidWindow
	}
	if limit := from.AddDate(0, 0, MaxWindowDays); to.After(limit) {
		to = limit
	}
	return from, to, nil
}

var _ queries.Handler[GetPricingQuery, []dto.PricingEntry] = (*GetPricingHandler)(nil)
