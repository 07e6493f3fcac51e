package pricing

import (
	"context"
	"time"

	"staysia/internal/app/handlers/support"
	"staysia/internal/app/policies"
	"staysia/internal/app/uow"
	domainpricing "staysia/internal/domain/pricing"
)

// LocalSource reads pricing rows straight from the catalog store.
type LocalSource struct {
	UoWFactory uow.UoWFactory
}

func (s *LocalSource) FetchPricing(ctx context.Context, propertyID int64, from, to time.Time) ([]domainpricing.Entry, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, s.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	return unit.Pricing().Range(execCtx, propertyID, from, to)
}

var _ policies.PricingSource = (*LocalSource)(nil)
