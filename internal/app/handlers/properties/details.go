package properties

import (
	"context"
	"log/slog"
	"time"

	"staysia/internal/app/dto"
	"staysia/internal/app/handlers/support"
	"staysia/internal/app/policies"
	"staysia/internal/app/queries"
	"staysia/internal/app/uow"
	domainproperties "staysia/internal/domain/properties"
	domainreviews "staysia/internal/domain/reviews"
	"staysia/internal/domain/shared/daterange"
)

const getPropertyDetailsKey = "properties.details"

// DetailsPricingDays is the pricing window included in the detail payload.
const DetailsPricingDays = 60

type GetPropertyDetailsQuery struct {
	ID domainproperties.PropertyID
}

func (q GetPropertyDetailsQuery) Key() string { return getPropertyDetailsKey }

type GetPropertyDetailsHandler struct {
	UoWFactory uow.UoWFactory
	Cache      policies.DetailsCache
	Logger     *slog.Logger
	Now        func() time.Time
}

func (h *GetPropertyDetailsHandler) Handle(ctx context.Context, q GetPropertyDetailsQuery) (dto.PropertyDetails, error) {
	if q.ID <= 0 {
		return dto.PropertyDetails{}, domainproperties.ErrInvalidID
	}
	if h.Cache != nil {
		cached, ok, err := h.Cache.Get(ctx, int64(q.ID))
		if err != nil {
			h.logger().Warn("details cache read failed", "property_id", int64(q.ID), "error", err)
		} else if ok {
			return cached, nil
		}
	}

	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PropertyDetails{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	property, err := unit.Properties().ByID(execCtx, q.ID)
	if err != nil {
		return dto.PropertyDetails{}, err
	}
	rooms, err := unit.Rooms().ListByProperty(execCtx, q.ID)
	if err != nil {
		return dto.PropertyDetails{}, err
	}
	reviews, err := unit.Reviews().ListByProperty(execCtx, q.ID)
	if err != nil {
		return dto.PropertyDetails{}, err
	}
	domainreviews.SortNewestFirst(reviews)

	today := daterange.Today(h.now())
	entries, err := unit.Pricing().Range(execCtx, int64(q.ID), today, today.AddDate(0, 0, DetailsPricingDays))
	if err != nil {
		return dto.PropertyDetails{}, err
	}

	details := dto.PropertyDetails{
		Property: dto.MapProperty(property),
		Rooms:    dto.MapRooms(rooms),
		Reviews:  dto.MapReviews(reviews),
		Pricing:  dto.MapPricing(entries),
	}
	details.Property.Rating = domainreviews.AverageRating(reviews, property.Rating)

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, int64(q.ID), details); err != nil {
			h.logger().Warn("details cache write failed", "property_id", int64(q.ID), "error", err)
		}
	}
	return details, nil
}

func (h *GetPropertyDetailsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *GetPropertyDetailsHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ queries.Handler[GetPropertyDetailsQuery, dto.PropertyDetails] = (*GetPropertyDetailsHandler)(nil)
